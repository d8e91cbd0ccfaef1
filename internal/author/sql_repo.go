package author

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

var sortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"birthDate": "birth_date",
}

// SQLRepo stores authors in the relational catalog schema.
type SQLRepo struct {
	store   *store.Store
	timeout time.Duration
}

func NewSQLRepo(s *store.Store, timeout time.Duration) *SQLRepo {
	return &SQLRepo{store: s, timeout: timeout}
}

func (r *SQLRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLRepo) Save(ctx context.Context, a *Author) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if a.ID == 0 {
		query := r.store.Dialect.Rebind(
			"INSERT INTO authors (name, birth_date) VALUES (?, ?) RETURNING id")
		return r.store.DB.QueryRowContext(ctx, query, a.Name, a.BirthDate).Scan(&a.ID)
	}

	query := r.store.Dialect.Rebind(
		"UPDATE authors SET name = ?, birth_date = ? WHERE id = ?")
	res, err := r.store.DB.ExecContext(ctx, query, a.Name, a.BirthDate, a.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) FindAll(ctx context.Context, p paging.PageRequest) ([]Author, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.store.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&total); err != nil {
		return nil, 0, err
	}

	query := r.store.Dialect.Rebind(
		"SELECT id, name, birth_date FROM authors " +
			store.OrderClause(p.Sort, sortColumns, "id") + " LIMIT ? OFFSET ?")
	rows, err := r.store.DB.QueryContext(ctx, query, p.Size, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	authors := make([]Author, 0, p.Size)
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.BirthDate); err != nil {
			return nil, 0, err
		}
		authors = append(authors, a)
	}
	return authors, total, rows.Err()
}

func (r *SQLRepo) FindOne(ctx context.Context, id int64) (Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.store.Dialect.Rebind(
		"SELECT id, name, birth_date FROM authors WHERE id = ?")
	var a Author
	err := r.store.DB.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.BirthDate)
	if errors.Is(err, sql.ErrNoRows) {
		return Author{}, ErrNotFound
	}
	if err != nil {
		return Author{}, err
	}
	return a, nil
}

func (r *SQLRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.store.DB.ExecContext(ctx,
		r.store.Dialect.Rebind("DELETE FROM authors WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
