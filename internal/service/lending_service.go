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

// LendingService coordinates the borrow/reserve lifecycle across the
// catalog, the ledger and member relation lists.
type LendingService struct {
	books        repository.BookRepository
	members      repository.MemberRepository
	transactions repository.TransactionRepository
	dispatcher   events.Dispatcher
}

// LendingDependencies bundles repositories for the lending service.
type LendingDependencies struct {
	BookRepo        repository.BookRepository
	MemberRepo      repository.MemberRepository
	TransactionRepo repository.TransactionRepository
	Dispatcher      events.Dispatcher
}

// LoanInput describes a borrow/reserve request.
type LoanInput struct {
	BookID          string
	BorrowerName    string
	MemberID        *string
	TransactionType domain.TransactionType
	FromDate        string
	ToDate          string
}

// TransactionPatch carries a shallow field overwrite for a ledger entry.
// Nil fields are preserved.
type TransactionPatch struct {
	BookID            *string
	BookName          *string
	BorrowerName      *string
	TransactionType   *domain.TransactionType
	TransactionStatus *domain.TransactionStatus
	FromDate          *string
	ToDate            *string
	ReturnDate        *string
}

// NewLendingService constructs the service.
func NewLendingService(deps LendingDependencies) *LendingService {
	return &LendingService{
		books:        deps.BookRepo,
		members:      deps.MemberRepo,
		transactions: deps.TransactionRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// CreateLoan validates the request, snapshots the referenced book and
// writes the ledger entry. The snapshot keeps the book's id and name as
// they were at creation time; later catalog edits do not touch it.
func (s *LendingService) CreateLoan(ctx context.Context, input LoanInput) (*domain.Transaction, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.BookID) == "" {
		details["bookId"] = "Book ID is required and must be a non-empty string"
	}
	if strings.TrimSpace(input.BorrowerName) == "" {
		details["borrowerName"] = "Borrower name is required and must be a non-empty string"
	}
	if !domain.ValidTransactionType(input.TransactionType) {
		details["transactionType"] = `Transaction type must be either "Issued" or "Reserved"`
	}
	if strings.TrimSpace(input.FromDate) == "" {
		details["fromDate"] = "From date is required and must be a valid date string"
	}
	if strings.TrimSpace(input.ToDate) == "" {
		details["toDate"] = "To date is required and must be a valid date string"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", details)
	}

	book, err := s.books.GetByBookID(ctx, strings.TrimSpace(input.BookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"bookId": input.BookID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.MemberID != nil {
		if _, err := s.members.GetByID(ctx, *input.MemberID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("user", nil)
			}
			return nil, apperrors.MapError(err)
		}
	}

	txn := &domain.Transaction{
		BookID:            book.BookID,
		BookName:          book.BookName,
		MemberID:          input.MemberID,
		BorrowerName:      strings.TrimSpace(input.BorrowerName),
		TransactionType:   input.TransactionType,
		TransactionStatus: domain.TransactionStatusActive,
		FromDate:          strings.TrimSpace(input.FromDate),
		ToDate:            strings.TrimSpace(input.ToDate),
	}

	if err := s.transactions.CreateLoan(ctx, txn); err != nil {
		if errors.Is(err, repository.ErrNoCopiesAvailable) {
			return nil, apperrors.NewConflict("no copies of the book are available", map[string]any{"bookId": book.BookID})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("book", map[string]any{"bookId": input.BookID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLoanCreated,
		SubjectID: txn.ID,
		Payload: events.LoanCreatedPayload{
			BookID:          txn.BookID,
			BookName:        txn.BookName,
			BorrowerName:    txn.BorrowerName,
			MemberID:        txn.MemberID,
			TransactionType: txn.TransactionType,
		},
	})
	return txn, nil
}

// UpdateTransaction merges the patch over the stored entry and
// re-validates the enumerated fields. Completed is terminal; a patch is
// not allowed to move a completed entry back to Active.
func (s *LendingService) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (*domain.Transaction, error) {
	txn, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("transaction", nil)
		}
		return nil, apperrors.MapError(err)
	}

	previousStatus := txn.TransactionStatus
	applyTransactionPatch(txn, patch)

	details := map[string]any{}
	if !domain.ValidTransactionType(txn.TransactionType) {
		details["transactionType"] = `Transaction type must be either "Issued" or "Reserved"`
	}
	if !domain.ValidTransactionStatus(txn.TransactionStatus) {
		details["transactionStatus"] = `Transaction status must be either "Active" or "Completed"`
	}
	if previousStatus == domain.TransactionStatusCompleted && txn.TransactionStatus == domain.TransactionStatusActive {
		details["transactionStatus"] = "completed transactions cannot be reactivated"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", details)
	}

	if err := s.transactions.Update(ctx, txn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("transaction", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return txn, nil
}

// ListTransactions returns all ledger entries, newest first.
func (s *LendingService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.transactions.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return txns, nil
}

// CompleteLoan marks the transaction Completed and migrates it from the
// member's active list to the previous list, as one atomic operation.
func (s *LendingService) CompleteLoan(ctx context.Context, memberID, transactionID string) (*domain.Member, error) {
	if _, err := s.members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if _, err := s.transactions.GetByID(ctx, transactionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("transaction", nil)
		}
		return nil, apperrors.MapError(err)
	}

	returnDate := time.Now().Format("2006-01-02")
	if err := s.transactions.CompleteLoan(ctx, memberID, transactionID, returnDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("transaction", nil)
		}
		return nil, apperrors.MapError(err)
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventLoanCompleted,
		SubjectID: transactionID,
		Payload: events.LoanCompletedPayload{
			MemberID:   memberID,
			ReturnDate: returnDate,
		},
	})
	return member, nil
}

func applyTransactionPatch(txn *domain.Transaction, patch TransactionPatch) {
	if patch.BookID != nil {
		txn.BookID = *patch.BookID
	}
	if patch.BookName != nil {
		txn.BookName = *patch.BookName
	}
	if patch.BorrowerName != nil {
		txn.BorrowerName = *patch.BorrowerName
	}
	if patch.TransactionType != nil {
		txn.TransactionType = *patch.TransactionType
	}
	if patch.TransactionStatus != nil {
		txn.TransactionStatus = *patch.TransactionStatus
	}
	if patch.FromDate != nil {
		txn.FromDate = *patch.FromDate
	}
	if patch.ToDate != nil {
		txn.ToDate = *patch.ToDate
	}
	if patch.ReturnDate != nil {
		txn.ReturnDate = patch.ReturnDate
	}
}

func (s *LendingService) publishEvent(ctx context.Context, event events.Event) {
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
