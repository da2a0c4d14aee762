package domain

import "time"

// UserType enumerates the kinds of library accounts.
type UserType string

const (
	UserTypeStudent UserType = "Student"
	UserTypeStaff   UserType = "Staff"
	UserTypeAdmin   UserType = "Admin"
)

// Member models a borrower account. ActiveTransactions and
// PrevTransactions hold ordered, non-owning references into the
// transaction ledger; the records themselves are owned by the ledger.
type Member struct {
	ID                 string
	UserFullName       string
	Email              string
	PasswordHash       string
	MobileNumber       string
	UserType           UserType
	AdmissionID        string
	EmployeeID         string
	Gender             string
	Age                int
	DOB                string
	Address            string
	Photo              string
	IsAdmin            bool
	ActiveTransactions []string
	PrevTransactions   []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
