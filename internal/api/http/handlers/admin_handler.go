package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/service"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// AdminHandler exposes the administrator login endpoint.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Login POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, exp, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"email":    req.Email,
			"userType": domain.UserTypeAdmin,
			"isAdmin":  true,
		},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}
