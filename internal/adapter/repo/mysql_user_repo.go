package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

// MySQLUserRepo stores back-office accounts (admins and stockists).
type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

const userCols = `
SELECT id,name,email,cpf,password_hash,role,active
FROM users`

func (r *MySQLUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userCols+` WHERE email=?`, email))
}

func (r *MySQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, userCols+` WHERE id=?`, id))
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CPF, &u.PasswordHash, &u.Role, &u.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all staff accounts ordered by name; a non-empty filter narrows
// by name fragment. LIKE is case-insensitive under the default collation.
func (r *MySQLUserRepo) List(ctx context.Context, nameFilter string) ([]domain.User, error) {
	query := userCols + ` ORDER BY name`
	args := []any{}
	if nameFilter != "" {
		query = userCols + ` WHERE name LIKE ? ORDER BY name`
		args = append(args, "%"+nameFilter+"%")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CPF, &u.PasswordHash, &u.Role, &u.Active); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *MySQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id,name,email,cpf,password_hash,role,active)
VALUES (?,?,?,?,?,?,?)
`, u.ID, u.Name, u.Email, u.CPF, u.PasswordHash, u.Role, u.Active)
	return err
}

// Update overwrites every mutable column. Email is immutable and not part of
// the statement. Existence is checked by the service via GetByID.
func (r *MySQLUserRepo) Update(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE users SET name=?,cpf=?,password_hash=?,role=?,active=?
WHERE id=?`, u.Name, u.CPF, u.PasswordHash, u.Role, u.Active, u.ID)
	return err
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)
