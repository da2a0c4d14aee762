package dto

import (
	"time"

	"github.com/spec-kit/library-service/internal/domain"
)

// CreateTransactionRequest payload for the borrow/reserve operation.
type CreateTransactionRequest struct {
	BookID          string  `json:"bookId"`
	BorrowerName    string  `json:"borrowerName"`
	MemberID        *string `json:"memberId"`
	TransactionType string  `json:"transactionType"`
	FromDate        string  `json:"fromDate"`
	ToDate          string  `json:"toDate"`
}

// UpdateTransactionRequest is a shallow patch; absent fields are kept.
type UpdateTransactionRequest struct {
	BookID            *string `json:"bookId"`
	BookName          *string `json:"bookName"`
	BorrowerName      *string `json:"borrowerName"`
	TransactionType   *string `json:"transactionType"`
	TransactionStatus *string `json:"transactionStatus"`
	FromDate          *string `json:"fromDate"`
	ToDate            *string `json:"toDate"`
	ReturnDate        *string `json:"returnDate"`
}

// TransactionResponse is a ledger entry.
type TransactionResponse struct {
	ID                string                   `json:"_id"`
	BookID            string                   `json:"bookId"`
	BookName          string                   `json:"bookName"`
	MemberID          *string                  `json:"memberId,omitempty"`
	BorrowerName      string                   `json:"borrowerName"`
	TransactionType   domain.TransactionType   `json:"transactionType"`
	TransactionStatus domain.TransactionStatus `json:"transactionStatus"`
	FromDate          string                   `json:"fromDate"`
	ToDate            string                   `json:"toDate"`
	ReturnDate        *string                  `json:"returnDate"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}
