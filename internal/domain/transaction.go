package domain

import "time"

// TransactionType distinguishes a checkout from a reservation.
type TransactionType string

const (
	TransactionTypeIssued   TransactionType = "Issued"
	TransactionTypeReserved TransactionType = "Reserved"
)

// ValidTransactionType reports whether t is a known type.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIssued || t == TransactionTypeReserved
}

// TransactionStatus is the two-state lifecycle flag. Active moves to
// Completed exactly once; Completed is terminal.
type TransactionStatus string

const (
	TransactionStatusActive    TransactionStatus = "Active"
	TransactionStatusCompleted TransactionStatus = "Completed"
)

// ValidTransactionStatus reports whether s is a known status.
func ValidTransactionStatus(s TransactionStatus) bool {
	return s == TransactionStatusActive || s == TransactionStatusCompleted
}

// Transaction is a ledger entry for a borrow or reservation. BookID and
// BookName are snapshots captured at creation time and intentionally not
// kept in sync with later catalog edits. BorrowerName is likewise a
// snapshot; MemberID carries the borrower reference for integrity.
type Transaction struct {
	ID                string
	BookID            string
	BookName          string
	MemberID          *string
	BorrowerName      string
	TransactionType   TransactionType
	TransactionStatus TransactionStatus
	FromDate          string
	ToDate            string
	ReturnDate        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
