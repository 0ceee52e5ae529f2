package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) Create(ctx context.Context, p *domain.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO products (id,name,description,price_cents,stock,active,images_json,default_image)
VALUES (?,?,?,?,?,?,?,?)
`, p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.Active, images, p.DefaultImage)
	return err
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *domain.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	// Existence is checked by the service; an UPDATE that changes nothing
	// reports zero affected rows on MySQL and must not read as not-found.
	_, err = r.db.ExecContext(ctx, `
UPDATE products SET name=?,description=?,price_cents=?,stock=?,images_json=?,default_image=?
WHERE id=?`, p.Name, p.Description, p.PriceCents, p.Stock, images, p.DefaultImage, p.ID)
	return err
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,description,price_cents,stock,active,images_json,default_image
FROM products WHERE id=?`, id)
	return scanProduct(row)
}

func (r *MySQLProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,description,price_cents,stock,active,images_json,default_image
FROM products WHERE active=true ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var images []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.Active, &images, &p.DefaultImage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *MySQLProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET active=? WHERE id=?`, active, id)
	return err
}

func (r *MySQLProductRepo) SetStock(ctx context.Context, id string, stock int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET stock=? WHERE id=?`, stock, id)
	return err
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
