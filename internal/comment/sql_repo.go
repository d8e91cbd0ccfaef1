package comment

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
	"date": "created_date",
}

// SQLRepo stores comments in the relational catalog schema.
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

func (r *SQLRepo) Save(ctx context.Context, c *Comment) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if c.ID == 0 {
		query := r.store.Dialect.Rebind(`
			INSERT INTO comments (body, created_date, book_id)
			VALUES (?, ?, ?)
			RETURNING id`)
		return r.store.DB.QueryRowContext(ctx, query, c.Text, c.Date, c.BookID).Scan(&c.ID)
	}

	query := r.store.Dialect.Rebind(
		"UPDATE comments SET body = ?, created_date = ?, book_id = ? WHERE id = ?")
	res, err := r.store.DB.ExecContext(ctx, query, c.Text, c.Date, c.BookID, c.ID)
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

func (r *SQLRepo) FindAll(ctx context.Context, p paging.PageRequest) ([]Comment, int64, error) {
	return r.findPage(ctx, "", nil, p)
}

func (r *SQLRepo) FindByBook(ctx context.Context, bookID int64, p paging.PageRequest) ([]Comment, int64, error) {
	return r.findPage(ctx, "WHERE book_id = ?", []any{bookID}, p)
}

func (r *SQLRepo) findPage(ctx context.Context, where string, args []any, p paging.PageRequest) ([]Comment, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	countSQL := r.store.Dialect.Rebind("SELECT COUNT(*) FROM comments " + where)
	var total int64
	if err := r.store.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := r.store.Dialect.Rebind(
		"SELECT id, body, created_date, book_id FROM comments " + where + " " +
			store.OrderClause(p.Sort, sortColumns, "id") + " LIMIT ? OFFSET ?")
	pageArgs := append(append([]any{}, args...), p.Size, p.Offset())
	rows, err := r.store.DB.QueryContext(ctx, dataSQL, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := make([]Comment, 0, p.Size)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.Date, &c.BookID); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *SQLRepo) FindOne(ctx context.Context, id int64) (Comment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.store.Dialect.Rebind(
		"SELECT id, body, created_date, book_id FROM comments WHERE id = ?")
	var c Comment
	err := r.store.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Text, &c.Date, &c.BookID)
	if errors.Is(err, sql.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	if err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (r *SQLRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.store.DB.ExecContext(ctx,
		r.store.Dialect.Rebind("DELETE FROM comments WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
