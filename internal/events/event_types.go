package events

import (
	"time"

	"github.com/spec-kit/library-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoanCreated      EventType = "loan_created"
	EventLoanCompleted    EventType = "loan_completed"
	EventBookAdded        EventType = "book_added"
	EventMemberRegistered EventType = "member_registered"
)

// Event represents a domain event emitted by services. SubjectID is the
// id of the record the event is about (transaction, book or member).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoanCreatedPayload payload.
type LoanCreatedPayload struct {
	BookID          string                 `json:"book_id"`
	BookName        string                 `json:"book_name"`
	BorrowerName    string                 `json:"borrower_name"`
	MemberID        *string                `json:"member_id,omitempty"`
	TransactionType domain.TransactionType `json:"transaction_type"`
}

// LoanCompletedPayload payload.
type LoanCompletedPayload struct {
	MemberID   string `json:"member_id"`
	ReturnDate string `json:"return_date"`
}

// BookAddedPayload payload.
type BookAddedPayload struct {
	BookID   string `json:"book_id"`
	BookName string `json:"book_name"`
	Copies   int    `json:"copies"`
}

// MemberRegisteredPayload payload.
type MemberRegisteredPayload struct {
	Email    string          `json:"email"`
	UserType domain.UserType `json:"user_type"`
}
