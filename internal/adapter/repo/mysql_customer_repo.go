package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

// Create persists the customer together with all registration addresses.
func (r *MySQLCustomerRepo) Create(ctx context.Context, c *domain.Customer, addresses []domain.Address) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO customers (id,full_name,email,cpf,birth_date,gender,password_hash,created_at)
VALUES (?,?,?,?,?,?,?,?)
`, c.ID, c.FullName, c.Email, c.CPF, c.BirthDate, c.Gender, c.PasswordHash, c.CreatedAt)
	if err != nil {
		return err
	}

	for _, a := range addresses {
		if err := insertAddress(ctx, tx, &a); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertAddress(ctx context.Context, tx *sql.Tx, a *domain.Address) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO addresses (id,customer_id,cep,street,number,complement,district,city,state,billing,is_default)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
`, a.ID, a.CustomerID, a.CEP, a.Street, a.Number, a.Complement, a.District, a.City, a.State, a.Billing, a.Default)
	return err
}

func (r *MySQLCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,full_name,email,cpf,birth_date,gender,password_hash,created_at
FROM customers WHERE email=?`, email)

	var c domain.Customer
	err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.CPF, &c.BirthDate, &c.Gender, &c.PasswordHash, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCustomerRepo) ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE email=? OR cpf=?`, email, cpf).Scan(&n)
	return n > 0, err
}

// AddressByID is scoped to the owning customer: a valid address id owned by
// someone else resolves exactly like a missing one.
func (r *MySQLCustomerRepo) AddressByID(ctx context.Context, customerID, addressID string) (*domain.Address, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,customer_id,cep,street,number,complement,district,city,state,billing,is_default
FROM addresses WHERE id=? AND customer_id=?`, addressID, customerID)

	var a domain.Address
	err := row.Scan(&a.ID, &a.CustomerID, &a.CEP, &a.Street, &a.Number, &a.Complement,
		&a.District, &a.City, &a.State, &a.Billing, &a.Default)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *MySQLCustomerRepo) ListDeliveryAddresses(ctx context.Context, customerID string) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,customer_id,cep,street,number,complement,district,city,state,billing,is_default
FROM addresses WHERE customer_id=? AND billing=false ORDER BY is_default DESC, id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.CEP, &a.Street, &a.Number, &a.Complement,
			&a.District, &a.City, &a.State, &a.Billing, &a.Default); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AddAddress appends a delivery address; a new default clears the old one in
// the same transaction.
func (r *MySQLCustomerRepo) AddAddress(ctx context.Context, a *domain.Address) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if a.Default {
		_, err = tx.ExecContext(ctx,
			`UPDATE addresses SET is_default=false WHERE customer_id=? AND billing=false`, a.CustomerID)
		if err != nil {
			return err
		}
	}
	if err := insertAddress(ctx, tx, a); err != nil {
		return err
	}
	return tx.Commit()
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
