package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/library-service/internal/domain"
)

// ErrNoCopiesAvailable is returned when every physical copy of a book is
// already out on an active issued transaction.
var ErrNoCopiesAvailable = errors.New("no copies available")

// TransactionRepository encapsulates ledger persistence. CreateLoan and
// CompleteLoan run multi-row lifecycle updates inside a single database
// transaction so the ledger and the member relation lists cannot diverge.
type TransactionRepository interface {
	CreateLoan(ctx context.Context, txn *domain.Transaction) error
	CompleteLoan(ctx context.Context, memberID, transactionID, returnDate string) error
	Update(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	ListActiveByBook(ctx context.Context, bookID string) ([]domain.Transaction, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Transaction, error)
	Count(ctx context.Context) (int64, error)
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository instantiates repository.
func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionColumns = `id, book_id, book_name, member_id, borrower_name,
    transaction_type, transaction_status, from_date, to_date, return_date,
    created_at, updated_at`

// CreateLoan inserts the ledger entry and, for an identified borrower,
// links it into the member's active list. An Issued loan first re-checks
// availability under a row lock on the book, so two concurrent requests
// for the last copy cannot both succeed.
func (r *transactionRepository) CreateLoan(ctx context.Context, txn *domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var copies int
	if err := tx.QueryRow(ctx,
		`SELECT copies FROM books WHERE book_id=$1 FOR UPDATE`,
		txn.BookID,
	).Scan(&copies); err != nil {
		return err
	}

	if txn.TransactionType == domain.TransactionTypeIssued {
		var issued int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM transactions
             WHERE book_id=$1 AND transaction_type=$2 AND transaction_status=$3`,
			txn.BookID, domain.TransactionTypeIssued, domain.TransactionStatusActive,
		).Scan(&issued); err != nil {
			return err
		}
		if issued >= copies {
			return ErrNoCopiesAvailable
		}
	}

	const insert = `
        INSERT INTO transactions (book_id, book_name, member_id, borrower_name,
            transaction_type, transaction_status, from_date, to_date, return_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, insert,
		txn.BookID,
		txn.BookName,
		txn.MemberID,
		txn.BorrowerName,
		txn.TransactionType,
		txn.TransactionStatus,
		txn.FromDate,
		txn.ToDate,
		txn.ReturnDate,
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt); err != nil {
		return err
	}

	if txn.MemberID != nil {
		cmd, err := tx.Exec(ctx,
			`UPDATE members
             SET active_transactions = array_append(active_transactions, $1), updated_at = NOW()
             WHERE id=$2`,
			txn.ID, *txn.MemberID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
	}

	return tx.Commit(ctx)
}

// CompleteLoan marks the transaction Completed with the given return date
// and migrates its id from the member's active list to the previous list.
// The append deduplicates; repeated completion is a no-op on the lists.
func (r *transactionRepository) CompleteLoan(ctx context.Context, memberID, transactionID, returnDate string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE transactions
         SET transaction_status=$1, return_date=$2, updated_at=NOW()
         WHERE id=$3`,
		domain.TransactionStatusCompleted, returnDate, transactionID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	cmd, err = tx.Exec(ctx,
		`UPDATE members
         SET active_transactions = array_remove(active_transactions, $1),
             prev_transactions = CASE WHEN $1 = ANY(prev_transactions)
                 THEN prev_transactions
                 ELSE array_append(prev_transactions, $1) END,
             updated_at = NOW()
         WHERE id=$2`,
		transactionID, memberID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *transactionRepository) Update(ctx context.Context, txn *domain.Transaction) error {
	const query = `
        UPDATE transactions SET book_id=$1, book_name=$2, borrower_name=$3,
            transaction_type=$4, transaction_status=$5, from_date=$6, to_date=$7,
            return_date=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		txn.BookID,
		txn.BookName,
		txn.BorrowerName,
		txn.TransactionType,
		txn.TransactionStatus,
		txn.FromDate,
		txn.ToDate,
		txn.ReturnDate,
		txn.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id=$1`

	var txn domain.Transaction
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&txn.ID,
		&txn.BookID,
		&txn.BookName,
		&txn.MemberID,
		&txn.BorrowerName,
		&txn.TransactionType,
		&txn.TransactionStatus,
		&txn.FromDate,
		&txn.ToDate,
		&txn.ReturnDate,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *transactionRepository) ListActiveByBook(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
        WHERE book_id=$1 AND transaction_status=$2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, bookID, domain.TransactionStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByIDs fetches ledger entries for a member's relation lists,
// preserving the order of ids.
func (r *transactionRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Transaction, error) {
	if len(ids) == 0 {
		return []domain.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id::text = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fetched, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Transaction, len(fetched))
	for _, txn := range fetched {
		byID[txn.ID] = txn
	}
	ordered := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		if txn, ok := byID[id]; ok {
			ordered = append(ordered, txn)
		}
	}
	return ordered, nil
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var result []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.BookID,
			&txn.BookName,
			&txn.MemberID,
			&txn.BorrowerName,
			&txn.TransactionType,
			&txn.TransactionStatus,
			&txn.FromDate,
			&txn.ToDate,
			&txn.ReturnDate,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, txn)
	}
	return result, rows.Err()
}
