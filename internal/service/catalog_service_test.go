package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/events"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

func newCatalogFixture() (*CatalogService, *fakeBookRepo, *fakeTransactionRepo, events.Dispatcher) {
	books := newFakeBookRepo()
	members := newFakeMemberRepo()
	txns := newFakeTransactionRepo(books, members)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewCatalogService(CatalogDependencies{
		BookRepo:        books,
		TransactionRepo: txns,
		CategoryRepo:    &fakeCategoryRepo{},
		Dispatcher:      dispatcher,
	})
	return svc, books, txns, dispatcher
}

func TestAddBook(t *testing.T) {
	svc, _, _, dispatcher := newCatalogFixture()

	var published []events.Event
	dispatcher.Subscribe(events.EventBookAdded, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	book, err := svc.AddBook(context.Background(), BookInput{
		BookID:     "B-42",
		BookName:   "Clean Architecture",
		AuthorName: "Martin",
		Copies:     3,
		CopiesSet:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, 3, book.Copies)
	assert.NotNil(t, book.Categories)
	require.Len(t, published, 1)
	assert.Equal(t, events.EventBookAdded, published[0].Type)
}

func TestAddBookRequiresFields(t *testing.T) {
	svc, books, _, _ := newCatalogFixture()

	_, err := svc.AddBook(context.Background(), BookInput{})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "All required fields must be provided", domainErr.Message)
	for _, field := range []string{"bookId", "bookName", "authorName", "copies"} {
		assert.Contains(t, domainErr.Details, field)
	}
	assert.Empty(t, books.books)
}

func TestAddBookDuplicateID(t *testing.T) {
	svc, books, _, _ := newCatalogFixture()
	books.seed(domain.Book{BookID: "B-42", BookName: "First", AuthorName: "X", Copies: 1})

	_, err := svc.AddBook(context.Background(), BookInput{
		BookID: "B-42", BookName: "Second", AuthorName: "Y", Copies: 1, CopiesSet: true,
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "Book ID already exists", domainErr.Message)
}

func TestUpdateBookPartialOverwrite(t *testing.T) {
	svc, books, _, _ := newCatalogFixture()
	seeded := books.seed(domain.Book{BookID: "B-1", BookName: "Old Name", AuthorName: "Old Author", Copies: 4})

	updated, err := svc.UpdateBook(context.Background(), seeded.ID, BookInput{BookName: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.BookName)
	assert.Equal(t, "Old Author", updated.AuthorName)
	assert.Equal(t, 4, updated.Copies, "copies untouched when not supplied")
	assert.Equal(t, "B-1", updated.BookID, "external id is immutable")
}

func TestUpdateBookByExternalID(t *testing.T) {
	svc, books, _, _ := newCatalogFixture()
	books.seed(domain.Book{BookID: "B-7", BookName: "X", AuthorName: "Y", Copies: 1})

	updated, err := svc.UpdateBook(context.Background(), "B-7", BookInput{Copies: 9, CopiesSet: true})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Copies)
}

func TestUpdateBookRejectsNegativeCopies(t *testing.T) {
	svc, books, _, _ := newCatalogFixture()
	seeded := books.seed(domain.Book{BookID: "B-1", BookName: "X", AuthorName: "Y", Copies: 2})

	_, err := svc.UpdateBook(context.Background(), seeded.ID, BookInput{Copies: -1, CopiesSet: true})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestDeleteBookNotFound(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	err := svc.DeleteBook(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestGetBookDetailsJoinsActiveTransactions(t *testing.T) {
	svc, books, txns, _ := newCatalogFixture()
	books.seed(domain.Book{BookID: "B-1", BookName: "X", AuthorName: "Y", Copies: 2})
	active := txns.seed(domain.Transaction{
		BookID: "B-1", BorrowerName: "Ada",
		TransactionType:   domain.TransactionTypeIssued,
		TransactionStatus: domain.TransactionStatusActive,
	})
	txns.seed(domain.Transaction{
		BookID: "B-1", BorrowerName: "Grace",
		TransactionType:   domain.TransactionTypeIssued,
		TransactionStatus: domain.TransactionStatusCompleted,
	})

	details, err := svc.GetBookDetails(context.Background(), "B-1")
	require.NoError(t, err)
	require.Len(t, details.ActiveTransactions, 1)
	assert.Equal(t, active.ID, details.ActiveTransactions[0].ID)
}

func TestGetBookDetailsNotFound(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()

	_, err := svc.GetBookDetails(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
