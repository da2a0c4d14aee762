package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/events"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// CatalogService manages the book catalog and its categories.
type CatalogService struct {
	books        repository.BookRepository
	transactions repository.TransactionRepository
	categories   repository.CategoryRepository
	dispatcher   events.Dispatcher
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	BookRepo        repository.BookRepository
	TransactionRepo repository.TransactionRepository
	CategoryRepo    repository.CategoryRepository
	Dispatcher      events.Dispatcher
}

// BookInput describes a catalog add/update payload.
type BookInput struct {
	BookID     string
	BookName   string
	AltTitle   *string
	AuthorName string
	Language   *string
	Publisher  *string
	Copies     int
	CopiesSet  bool
	Categories []string
}

// BookDetails pairs a book with its active ledger entries.
type BookDetails struct {
	Book               *domain.Book
	ActiveTransactions []domain.Transaction
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		books:        deps.BookRepo,
		transactions: deps.TransactionRepo,
		categories:   deps.CategoryRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// ListBooks returns the catalog projected to the listing fields.
func (s *CatalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return books, nil
}

// GetBookDetails fetches a book by its external id with its active
// transactions joined in.
func (s *CatalogService) GetBookDetails(ctx context.Context, bookID string) (*BookDetails, error) {
	book, err := s.books.GetByBookID(ctx, bookID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"bookId": bookID})
		}
		return nil, apperrors.MapError(err)
	}

	active, err := s.transactions.ListActiveByBook(ctx, book.BookID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &BookDetails{Book: book, ActiveTransactions: active}, nil
}

// AddBook validates and creates a catalog entry. The external book id
// must be unique across the catalog.
func (s *CatalogService) AddBook(ctx context.Context, input BookInput) (*domain.Book, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.BookID) == "" {
		details["bookId"] = "Book ID is required"
	}
	if strings.TrimSpace(input.BookName) == "" {
		details["bookName"] = "Book name is required"
	}
	if strings.TrimSpace(input.AuthorName) == "" {
		details["authorName"] = "Author name is required"
	}
	if !input.CopiesSet {
		details["copies"] = "Copy count is required"
	} else if input.Copies < 0 {
		details["copies"] = "Copy count must not be negative"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("All required fields must be provided", details)
	}

	if _, err := s.books.GetByBookID(ctx, strings.TrimSpace(input.BookID)); err == nil {
		return nil, apperrors.NewConflict("Book ID already exists", map[string]any{"bookId": input.BookID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	book := &domain.Book{
		BookID:     strings.TrimSpace(input.BookID),
		BookName:   strings.TrimSpace(input.BookName),
		AltTitle:   input.AltTitle,
		AuthorName: strings.TrimSpace(input.AuthorName),
		Language:   input.Language,
		Publisher:  input.Publisher,
		Copies:     input.Copies,
		Categories: input.Categories,
	}
	if book.Categories == nil {
		book.Categories = []string{}
	}

	if err := s.books.Create(ctx, book); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventBookAdded,
		SubjectID: book.ID,
		Payload: events.BookAddedPayload{
			BookID:   book.BookID,
			BookName: book.BookName,
			Copies:   book.Copies,
		},
	})
	return book, nil
}

// UpdateBook resolves the book by internal or external id and overwrites
// the supplied fields. The external book id itself is immutable.
func (s *CatalogService) UpdateBook(ctx context.Context, key string, input BookInput) (*domain.Book, error) {
	book, err := s.books.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if strings.TrimSpace(input.BookName) != "" {
		book.BookName = strings.TrimSpace(input.BookName)
	}
	if strings.TrimSpace(input.AuthorName) != "" {
		book.AuthorName = strings.TrimSpace(input.AuthorName)
	}
	if input.AltTitle != nil {
		book.AltTitle = input.AltTitle
	}
	if input.Language != nil {
		book.Language = input.Language
	}
	if input.Publisher != nil {
		book.Publisher = input.Publisher
	}
	if input.CopiesSet {
		if input.Copies < 0 {
			return nil, apperrors.NewValidationError("Validation failed", map[string]any{
				"copies": "Copy count must not be negative",
			})
		}
		book.Copies = input.Copies
	}
	if input.Categories != nil {
		book.Categories = input.Categories
	}

	if err := s.books.Update(ctx, book); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return book, nil
}

// DeleteBook removes a catalog entry. Ledger entries referencing the
// book are left untouched; they are historical records.
func (s *CatalogService) DeleteBook(ctx context.Context, key string) error {
	if err := s.books.Delete(ctx, key); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("book", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListCategories returns all category labels.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

func (s *CatalogService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
