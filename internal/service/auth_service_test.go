package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/config"
	"github.com/spec-kit/library-service/internal/domain"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

func newAuthFixture(t *testing.T, admin config.AdminConfig) (*AuthService, *fakeMemberRepo) {
	t.Helper()
	members := newFakeMemberRepo()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
		},
		Admin: admin,
	}
	return NewAuthService(cfg, members, nil), members
}

func validRegistration() RegisterInput {
	return RegisterInput{
		UserFullName: "Ada Lovelace",
		AdmissionID:  "ADM-1",
		Email:        "ada@example.com",
		Password:     "s3cret",
		MobileNumber: "555-0100",
		UserType:     domain.UserTypeStudent,
		Gender:       "female",
		Age:          28,
		DOB:          "1998-12-10",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _ := newAuthFixture(t, config.AdminConfig{})

	member, token, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, member.ID)
	assert.False(t, member.IsAdmin, "self-registration never grants admin")
	assert.NoError(t, auth.ComparePassword(member.PasswordHash, "s3cret"))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, member.ID, claims.UserID)
	assert.Equal(t, domain.UserTypeStudent, claims.UserType)
	assert.False(t, claims.IsAdmin)
}

func TestRegisterRejectsAdminUserType(t *testing.T) {
	svc, _ := newAuthFixture(t, config.AdminConfig{})

	input := validRegistration()
	input.UserType = domain.UserTypeAdmin
	_, _, _, err := svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Contains(t, apperrors.ToDomainError(err).Details, "userType")
}

func TestRegisterStaffKeepsEmployeeIDOnly(t *testing.T) {
	svc, _ := newAuthFixture(t, config.AdminConfig{})

	input := validRegistration()
	input.UserType = domain.UserTypeStaff
	input.EmployeeID = "EMP-9"
	member, _, _, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "EMP-9", member.EmployeeID)
	assert.Empty(t, member.AdmissionID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, members := newAuthFixture(t, config.AdminConfig{})
	members.seed(domain.Member{Email: "ada@example.com", UserType: domain.UserTypeStudent})

	_, _, _, err := svc.Register(context.Background(), validRegistration())
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, "User already exists", domainErr.Message)
}

func TestLogin(t *testing.T) {
	svc, members := newAuthFixture(t, config.AdminConfig{})
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	seeded := members.seed(domain.Member{Email: "ada@example.com", PasswordHash: hash, UserType: domain.UserTypeStudent})

	member, token, _, err := svc.Login(context.Background(), "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, member.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, config.AdminConfig{})

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "no account found with this email", domainErr.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, members := newAuthFixture(t, config.AdminConfig{})
	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	members.seed(domain.Member{Email: "ada@example.com", PasswordHash: hash, UserType: domain.UserTypeStudent})

	_, _, _, err = svc.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "incorrect password", apperrors.ToDomainError(err).Message)
}

func TestLoginAdmin(t *testing.T) {
	hash, err := auth.HashPassword("admin-pass", bcrypt.MinCost)
	require.NoError(t, err)
	svc, _ := newAuthFixture(t, config.AdminConfig{Email: "admin@example.com", PasswordHash: hash})

	token, _, err := svc.LoginAdmin(context.Background(), "admin@example.com", "admin-pass")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Empty(t, claims.UserID, "bootstrap admin has no member row")
	assert.Equal(t, domain.UserTypeAdmin, claims.UserType)
}

func TestLoginAdminBadCredentials(t *testing.T) {
	hash, err := auth.HashPassword("admin-pass", bcrypt.MinCost)
	require.NoError(t, err)
	svc, _ := newAuthFixture(t, config.AdminConfig{Email: "admin@example.com", PasswordHash: hash})

	_, _, err = svc.LoginAdmin(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestLoginAdminNotConfigured(t *testing.T) {
	svc, _ := newAuthFixture(t, config.AdminConfig{})

	_, _, err := svc.LoginAdmin(context.Background(), "admin@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "admin login is not configured", apperrors.ToDomainError(err).Message)
}
