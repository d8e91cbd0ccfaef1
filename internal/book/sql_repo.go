package book

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
)

const bookColumns = "id, title, isbn, publication_date, description, author_id, publisher_id"

var sortColumns = map[string]string{
	"id":              "id",
	"title":           "title",
	"isbn":            "isbn",
	"publicationDate": "publication_date",
	"description":     "description",
}

// SQLRepo stores books in the relational catalog schema.
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

func (r *SQLRepo) Save(ctx context.Context, b *Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if b.ID == 0 {
		query := r.store.Dialect.Rebind(`
			INSERT INTO books (title, isbn, publication_date, description, author_id, publisher_id)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id`)
		return r.store.DB.QueryRowContext(ctx, query,
			b.Title, b.ISBN, b.PublicationDate, b.Description, b.AuthorID, b.PublisherID,
		).Scan(&b.ID)
	}

	query := r.store.Dialect.Rebind(`
		UPDATE books
		SET title = ?, isbn = ?, publication_date = ?, description = ?, author_id = ?, publisher_id = ?
		WHERE id = ?`)
	res, err := r.store.DB.ExecContext(ctx, query,
		b.Title, b.ISBN, b.PublicationDate, b.Description, b.AuthorID, b.PublisherID, b.ID)
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

func (r *SQLRepo) FindAll(ctx context.Context, p paging.PageRequest) ([]Book, int64, error) {
	return r.findPage(ctx, "", nil, p)
}

func (r *SQLRepo) FindByAuthor(ctx context.Context, authorID int64, p paging.PageRequest) ([]Book, int64, error) {
	return r.findPage(ctx, "WHERE author_id = ?", []any{authorID}, p)
}

func (r *SQLRepo) FindByPublisher(ctx context.Context, publisherID int64, p paging.PageRequest) ([]Book, int64, error) {
	return r.findPage(ctx, "WHERE publisher_id = ?", []any{publisherID}, p)
}

func (r *SQLRepo) findPage(ctx context.Context, where string, args []any, p paging.PageRequest) ([]Book, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	countSQL := r.store.Dialect.Rebind("SELECT COUNT(*) FROM books " + where)
	var total int64
	if err := r.store.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := r.store.Dialect.Rebind(
		"SELECT " + bookColumns + " FROM books " + where + " " +
			store.OrderClause(p.Sort, sortColumns, "id") + " LIMIT ? OFFSET ?")
	pageArgs := append(append([]any{}, args...), p.Size, p.Offset())
	rows, err := r.store.DB.QueryContext(ctx, dataSQL, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books := make([]Book, 0, p.Size)
	for rows.Next() {
		var b Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.ISBN, &b.PublicationDate, &b.Description,
			&b.AuthorID, &b.PublisherID,
		); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, total, rows.Err()
}

func (r *SQLRepo) FindOne(ctx context.Context, id int64) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.store.Dialect.Rebind(
		"SELECT " + bookColumns + " FROM books WHERE id = ?")
	var b Book
	err := r.store.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.ISBN, &b.PublicationDate, &b.Description,
		&b.AuthorID, &b.PublisherID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *SQLRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.store.DB.ExecContext(ctx,
		r.store.Dialect.Rebind("DELETE FROM books WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
