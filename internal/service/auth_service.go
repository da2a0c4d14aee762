package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/config"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/events"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows for members and
// the bootstrap administrator.
type AuthService struct {
	members    repository.MemberRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	admin      config.AdminConfig
	dispatcher events.Dispatcher
}

// RegisterInput describes a member registration payload.
type RegisterInput struct {
	UserFullName string
	AdmissionID  string
	EmployeeID   string
	Email        string
	Password     string
	MobileNumber string
	UserType     domain.UserType
	Gender       string
	Age          int
	DOB          string
	Address      string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, members repository.MemberRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		members:    members,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		admin:      cfg.Admin,
		dispatcher: dispatcher,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new member account. Only Student and Staff accounts
// can self-register; admin privilege is never granted through this path.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Member, string, time.Time, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.UserFullName) == "" {
		details["userFullName"] = "Full name is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		details["email"] = "Email is required"
	}
	if input.Password == "" {
		details["password"] = "Password is required"
	}
	if strings.TrimSpace(input.MobileNumber) == "" {
		details["mobileNumber"] = "Mobile number is required"
	}
	if input.UserType != domain.UserTypeStudent && input.UserType != domain.UserTypeStaff {
		details["userType"] = `User type must be either "Student" or "Staff"`
	}
	if strings.TrimSpace(input.Gender) == "" {
		details["gender"] = "Gender is required"
	}
	if input.Age <= 0 {
		details["age"] = "Age is required"
	}
	if strings.TrimSpace(input.DOB) == "" {
		details["dob"] = "Date of birth is required"
	}
	if len(details) > 0 {
		return nil, "", time.Time{}, apperrors.NewValidationError("All required fields must be provided", details)
	}

	if _, err := s.members.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("User already exists", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	member := &domain.Member{
		UserFullName: strings.TrimSpace(input.UserFullName),
		Email:        input.Email,
		PasswordHash: hash,
		MobileNumber: strings.TrimSpace(input.MobileNumber),
		UserType:     input.UserType,
		Gender:       input.Gender,
		Age:          input.Age,
		DOB:          input.DOB,
		Address:      input.Address,
	}
	if input.UserType == domain.UserTypeStudent {
		member.AdmissionID = input.AdmissionID
	}
	if input.UserType == domain.UserTypeStaff {
		member.EmployeeID = input.EmployeeID
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(member.ID, member.Email, member.UserType, member.IsAdmin)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventMemberRegistered,
		SubjectID: member.ID,
		Payload: events.MemberRegisteredPayload{
			Email:    member.Email,
			UserType: member.UserType,
		},
	})
	return member, token, exp, nil
}

// Login authenticates a member.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Member, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("Email and password are required", nil)
	}

	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("no account found with this email")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(member.ID, member.Email, member.UserType, member.IsAdmin)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return member, token, exp, nil
}

// LoginAdmin authenticates the configured administrator and issues a
// token whose claims carry the admin flag.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, time.Time, error) {
	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin login is not configured")
	}
	if email != s.admin.Email {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid admin credentials")
	}
	if err := auth.ComparePassword(s.admin.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid admin credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken("", s.admin.Email, domain.UserTypeAdmin, true)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return token, exp, nil
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
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
