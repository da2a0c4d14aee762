package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/config"
	"github.com/spec-kit/library-service/internal/service"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// MembersHandler manages borrower-side lifecycle and photo endpoints.
type MembersHandler struct {
	lending *service.LendingService
	members *service.MemberService
	uploads config.UploadsConfig
}

// NewMembersHandler constructs handler.
func NewMembersHandler(lending *service.LendingService, members *service.MemberService, uploads config.UploadsConfig) *MembersHandler {
	return &MembersHandler{lending: lending, members: members, uploads: uploads}
}

// MoveTransaction PUT /api/users/:userId/transactions/:transactionId.
// Admin-gated by the route middleware; completes the transaction and
// migrates it to the member's previous list atomically.
func (h *MembersHandler) MoveTransaction(c *fiber.Ctx) error {
	member, err := h.lending.CompleteLoan(c.UserContext(), c.Params("userId"), c.Params("transactionId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Transaction moved successfully",
		"user":    memberResponse(member),
	})
}

// UploadPhoto POST /api/users/uploadphoto/:id.
func (h *MembersHandler) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return apperrors.NewValidationError("No file uploaded", nil)
	}
	if file.Size > h.uploads.MaxBytes {
		return apperrors.NewValidationError("File too large", map[string]any{
			"maxBytes": h.uploads.MaxBytes,
		})
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return apperrors.NewValidationError("Not an image! Please upload an image.", nil)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.uploads.Dir, filename)); err != nil {
		return apperrors.NewInternalError(err)
	}

	member, err := h.members.SetPhoto(c.UserContext(), c.Params("id"), "/uploads/"+filename)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile photo uploaded successfully",
		"photo":   member.Photo,
	})
}

// UpdatePhotoURL PUT /api/users/updatephotourl/:id.
func (h *MembersHandler) UpdatePhotoURL(c *fiber.Ctx) error {
	var req dto.UpdatePhotoURLRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PhotoURL == "" {
		return apperrors.NewValidationError("Photo URL is required", nil)
	}

	member, err := h.members.SetPhoto(c.UserContext(), c.Params("id"), req.PhotoURL)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile photo URL updated successfully",
		"photo":   member.Photo,
	})
}
