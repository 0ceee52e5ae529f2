package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

// ProductService is the catalog back-office. Image bytes never pass through
// here; products only carry filename references.
type ProductService struct {
	products ProductRepo
}

func NewProductService(products ProductRepo) *ProductService {
	return &ProductService{products: products}
}

type ProductInput struct {
	Name         string
	Description  string
	PriceCents   int64
	Stock        int
	Images       []string
	DefaultImage int // index into Images
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := &domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Stock:       in.Stock,
		Active:      true,
		Images:      in.Images,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if in.DefaultImage < 0 || in.DefaultImage >= len(in.Images) {
		return nil, fmt.Errorf("%w: default image index out of range", domain.ErrValidation)
	}
	p.DefaultImage = in.Images[in.DefaultImage]
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.Stock = in.Stock
	if len(in.Images) > 0 {
		p.Images = in.Images
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if in.DefaultImage < 0 || in.DefaultImage >= len(p.Images) {
		return nil, fmt.Errorf("%w: default image index out of range", domain.ErrValidation)
	}
	p.DefaultImage = p.Images[in.DefaultImage]
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductService) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListActive(ctx)
}

// ToggleActive flips availability in the storefront.
func (s *ProductService) ToggleActive(ctx context.Context, id string) (bool, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !p.Active
	if err := s.products.SetActive(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *ProductService) UpdateStock(ctx context.Context, id string, stock int) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", domain.ErrValidation)
	}
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return err
	}
	return s.products.SetStock(ctx, id, stock)
}
