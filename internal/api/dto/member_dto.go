package dto

import (
	"time"

	"github.com/spec-kit/library-service/internal/domain"
)

// RegisterRequest payload for member registration.
type RegisterRequest struct {
	UserFullName string `json:"userFullName"`
	AdmissionID  string `json:"admissionId"`
	EmployeeID   string `json:"employeeId"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber"`
	UserType     string `json:"userType"`
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	DOB          string `json:"dob"`
	Address      string `json:"address"`
}

// LoginRequest payload for member and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for profile updates.
type UpdateProfileRequest struct {
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	DOB     string `json:"dob"`
	Address string `json:"address"`
}

// UpdatePhotoURLRequest payload for photo-by-URL updates.
type UpdatePhotoURLRequest struct {
	PhotoURL string `json:"photoUrl"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MemberResponse is a borrower account without the credential, with the
// raw relation id lists.
type MemberResponse struct {
	ID                 string          `json:"_id"`
	UserFullName       string          `json:"userFullName"`
	Email              string          `json:"email"`
	MobileNumber       string          `json:"mobileNumber"`
	UserType           domain.UserType `json:"userType"`
	AdmissionID        string          `json:"admissionId,omitempty"`
	EmployeeID         string          `json:"employeeId,omitempty"`
	Gender             string          `json:"gender"`
	Age                int             `json:"age"`
	DOB                string          `json:"dob"`
	Address            string          `json:"address"`
	Photo              string          `json:"photo,omitempty"`
	IsAdmin            bool            `json:"isAdmin"`
	ActiveTransactions []string        `json:"activeTransactions"`
	PrevTransactions   []string        `json:"prevTransactions"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// MemberDetailResponse embeds the dereferenced ledger records in place
// of the id lists.
type MemberDetailResponse struct {
	ID                 string                `json:"_id"`
	UserFullName       string                `json:"userFullName"`
	Email              string                `json:"email"`
	MobileNumber       string                `json:"mobileNumber"`
	UserType           domain.UserType       `json:"userType"`
	AdmissionID        string                `json:"admissionId,omitempty"`
	EmployeeID         string                `json:"employeeId,omitempty"`
	Gender             string                `json:"gender"`
	Age                int                   `json:"age"`
	DOB                string                `json:"dob"`
	Address            string                `json:"address"`
	Photo              string                `json:"photo,omitempty"`
	IsAdmin            bool                  `json:"isAdmin"`
	ActiveTransactions []TransactionResponse `json:"activeTransactions"`
	PrevTransactions   []TransactionResponse `json:"prevTransactions"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}
