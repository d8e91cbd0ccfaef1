package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

// SQLUserRepo reads accounts from the users table.
type SQLUserRepo struct {
	store   *store.Store
	timeout time.Duration
}

func NewSQLUserRepo(s *store.Store, timeout time.Duration) *SQLUserRepo {
	return &SQLUserRepo{store: s, timeout: timeout}
}

func (r *SQLUserRepo) FindByLogin(ctx context.Context, login string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := r.store.Dialect.Rebind(
		"SELECT id, login, password_hash, role FROM users WHERE login = ?")
	var u User
	err := r.store.DB.QueryRowContext(ctx, query, login).Scan(
		&u.ID, &u.Login, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
