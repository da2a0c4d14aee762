package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/dto"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/service"
	apperrors "github.com/spec-kit/library-service/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and member read endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	members *service.MemberService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, memberService *service.MemberService) *AuthHandler {
	return &AuthHandler{auth: authService, members: memberService}
}

// Register POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, token, exp, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		UserFullName: req.UserFullName,
		AdmissionID:  req.AdmissionID,
		EmployeeID:   req.EmployeeID,
		Email:        req.Email,
		Password:     req.Password,
		MobileNumber: req.MobileNumber,
		UserType:     domain.UserType(req.UserType),
		Gender:       req.Gender,
		Age:          req.Age,
		DOB:          req.DOB,
		Address:      req.Address,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    memberResponse(member),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  memberResponse(member),
		"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// UpdateProfile PUT /api/auth/update/:id.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	member, err := h.members.UpdateProfile(c.UserContext(), c.Params("id"), service.ProfileInput{
		Age:     req.Age,
		Gender:  req.Gender,
		DOB:     req.DOB,
		Address: req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    memberResponse(member),
	})
}

// GetUser GET /api/auth/getuser/:id.
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	detail, err := h.members.GetMember(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(memberDetailResponse(detail))
}

// AllMembers GET /api/auth/allmembers.
func (h *AuthHandler) AllMembers(c *fiber.Ctx) error {
	details, err := h.members.ListMembers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.MemberDetailResponse, 0, len(details))
	for i := range details {
		items = append(items, memberDetailResponse(&details[i]))
	}
	return c.JSON(items)
}

func memberResponse(member *domain.Member) dto.MemberResponse {
	return dto.MemberResponse{
		ID:                 member.ID,
		UserFullName:       member.UserFullName,
		Email:              member.Email,
		MobileNumber:       member.MobileNumber,
		UserType:           member.UserType,
		AdmissionID:        member.AdmissionID,
		EmployeeID:         member.EmployeeID,
		Gender:             member.Gender,
		Age:                member.Age,
		DOB:                member.DOB,
		Address:            member.Address,
		Photo:              member.Photo,
		IsAdmin:            member.IsAdmin,
		ActiveTransactions: member.ActiveTransactions,
		PrevTransactions:   member.PrevTransactions,
		CreatedAt:          member.CreatedAt,
		UpdatedAt:          member.UpdatedAt,
	}
}

func memberDetailResponse(detail *service.MemberDetail) dto.MemberDetailResponse {
	member := detail.Member
	active := make([]dto.TransactionResponse, 0, len(detail.ActiveTransactions))
	for i := range detail.ActiveTransactions {
		active = append(active, transactionResponse(&detail.ActiveTransactions[i]))
	}
	previous := make([]dto.TransactionResponse, 0, len(detail.PrevTransactions))
	for i := range detail.PrevTransactions {
		previous = append(previous, transactionResponse(&detail.PrevTransactions[i]))
	}
	return dto.MemberDetailResponse{
		ID:                 member.ID,
		UserFullName:       member.UserFullName,
		Email:              member.Email,
		MobileNumber:       member.MobileNumber,
		UserType:           member.UserType,
		AdmissionID:        member.AdmissionID,
		EmployeeID:         member.EmployeeID,
		Gender:             member.Gender,
		Age:                member.Age,
		DOB:                member.DOB,
		Address:            member.Address,
		Photo:              member.Photo,
		IsAdmin:            member.IsAdmin,
		ActiveTransactions: active,
		PrevTransactions:   previous,
		CreatedAt:          member.CreatedAt,
		UpdatedAt:          member.UpdatedAt,
	}
}
