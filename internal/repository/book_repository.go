package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/library-service/internal/domain"
)

// BookRepository encapsulates catalog persistence.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, key string) error
	GetByBookID(ctx context.Context, bookID string) (*domain.Book, error)
	// GetByKey resolves a book by internal id or external book id.
	GetByKey(ctx context.Context, key string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a Postgres-backed implementation.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (book_id, book_name, alt_title, author_name, language, publisher, copies, categories)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		book.BookID,
		book.BookName,
		book.AltTitle,
		book.AuthorName,
		book.Language,
		book.Publisher,
		book.Copies,
		book.Categories,
	).Scan(&book.ID)
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	const query = `
        UPDATE books SET book_name=$1, alt_title=$2, author_name=$3, language=$4,
            publisher=$5, copies=$6, categories=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		book.BookName,
		book.AltTitle,
		book.AuthorName,
		book.Language,
		book.Publisher,
		book.Copies,
		book.Categories,
		book.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM books WHERE id::text=$1 OR book_id=$1`

	cmd, err := r.pool.Exec(ctx, query, key)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) GetByBookID(ctx context.Context, bookID string) (*domain.Book, error) {
	const query = `
        SELECT id, book_id, book_name, alt_title, author_name, language, publisher, copies, categories
        FROM books WHERE book_id=$1`
	return r.fetchSingle(ctx, query, bookID)
}

func (r *bookRepository) GetByKey(ctx context.Context, key string) (*domain.Book, error) {
	const query = `
        SELECT id, book_id, book_name, alt_title, author_name, language, publisher, copies, categories
        FROM books WHERE id::text=$1 OR book_id=$1`
	return r.fetchSingle(ctx, query, key)
}

func (r *bookRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Book, error) {
	var book domain.Book
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&book.ID,
		&book.BookID,
		&book.BookName,
		&book.AltTitle,
		&book.AuthorName,
		&book.Language,
		&book.Publisher,
		&book.Copies,
		&book.Categories,
	); err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns the catalog projected down to the listing fields.
func (r *bookRepository) List(ctx context.Context) ([]domain.Book, error) {
	const query = `
        SELECT id, book_id, book_name, author_name, copies
        FROM books ORDER BY book_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.BookID,
			&book.BookName,
			&book.AuthorName,
			&book.Copies,
		); err != nil {
			return nil, err
		}
		result = append(result, book)
	}
	return result, rows.Err()
}
