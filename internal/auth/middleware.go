package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Member is nil for the
// configured bootstrap administrator, which has no member row.
type Principal struct {
	Member   *domain.Member
	Email    string
	UserType domain.UserType
	IsAdmin  bool
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens  *TokenManager
	members repository.MemberRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, members repository.MemberRepository) *Middleware {
	return &Middleware{tokens: tokens, members: members}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{
		Email:    claims.Email,
		UserType: claims.UserType,
		IsAdmin:  claims.IsAdmin,
	}

	if claims.UserID != "" {
		member, err := m.members.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("user not found")
			}
			return apperrors.MapError(err)
		}
		principal.Member = member
		principal.IsAdmin = claims.IsAdmin || member.IsAdmin
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
