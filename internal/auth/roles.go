package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// RequireAdmin ensures the authenticated caller carries the admin flag.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin {
			return apperrors.NewForbidden("admin privilege required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures any principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
