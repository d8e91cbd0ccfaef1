package publisher

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

var sortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

// SQLRepo stores publishers in the relational catalog schema.
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

func (r *SQLRepo) Save(ctx context.Context, p *Publisher) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if p.ID == 0 {
		query := r.store.Dialect.Rebind(
			"INSERT INTO publishers (name) VALUES (?) RETURNING id")
		return r.store.DB.QueryRowContext(ctx, query, p.Name).Scan(&p.ID)
	}

	query := r.store.Dialect.Rebind("UPDATE publishers SET name = ? WHERE id = ?")
	res, err := r.store.DB.ExecContext(ctx, query, p.Name, p.ID)
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

func (r *SQLRepo) FindAll(ctx context.Context, page paging.PageRequest) ([]Publisher, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.store.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM publishers").Scan(&total); err != nil {
		return nil, 0, err
	}

	query := r.store.Dialect.Rebind(
		"SELECT id, name FROM publishers " +
			store.OrderClause(page.Sort, sortColumns, "id") + " LIMIT ? OFFSET ?")
	rows, err := r.store.DB.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	publishers := make([]Publisher, 0, page.Size)
	for rows.Next() {
		var p Publisher
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, 0, err
		}
		publishers = append(publishers, p)
	}
	return publishers, total, rows.Err()
}

func (r *SQLRepo) FindOne(ctx context.Context, id int64) (Publisher, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.store.Dialect.Rebind("SELECT id, name FROM publishers WHERE id = ?")
	var p Publisher
	err := r.store.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return Publisher{}, ErrNotFound
	}
	if err != nil {
		return Publisher{}, err
	}
	return p, nil
}

func (r *SQLRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.store.DB.ExecContext(ctx,
		r.store.Dialect.Rebind("DELETE FROM publishers WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
