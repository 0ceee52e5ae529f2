package domain

import "fmt"

// Product is a catalog entry. Images are stored as filename references only;
// the byte storage lives elsewhere.
type Product struct {
	ID           string
	Name         string
	Description  string
	PriceCents   int64
	Stock        int
	Active       bool
	Images       []string
	DefaultImage string
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: product description is required", ErrValidation)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("%w: product price must be positive", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", ErrValidation)
	}
	return nil
}
