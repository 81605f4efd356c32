package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthsync-service/internal/api/dto"
	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/service"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// AuthHandler exposes registration, login, logout, profile, and the OTP flow.
type AuthHandler struct {
	auth *service.AuthService
	otp  *service.OTPService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, otpService *service.OTPService) *AuthHandler {
	return &AuthHandler{auth: authService, otp: otpService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Gender == "" {
		return apperrors.NewValidationError("email, password, name, age, gender, history required", nil)
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		Age:             req.Age,
		Gender:          req.Gender,
		MedicalHistory:  req.History,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, meta, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"auth": dto.AuthResponse{Token: token, ExpiresAt: meta.ExpiresAt},
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Logout handles POST /api/auth/logout. Requires a valid, non-revoked token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Claims); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logged out successfully"})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"user": profileResponse(principal.User)})
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateProfile(c.UserContext(), principal.User.ID, service.ProfileUpdate{
		Name:            req.Name,
		Age:             req.Age,
		Gender:          req.Gender,
		MedicalHistory:  req.History,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": profileResponse(user)})
}

// SendOTP handles POST /api/auth/send-otp.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req dto.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email is required", nil)
	}

	if err := h.otp.RequestOTP(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "OTP sent successfully"})
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.OTP == "" {
		return apperrors.NewValidationError("email and otp required", nil)
	}

	if err := h.otp.VerifyOTP(c.UserContext(), req.Email, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "OTP verified"})
}

func profileResponse(user *domain.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Age:             user.Age,
		Gender:          user.Gender,
		History:         user.MedicalHistory,
		ProfileImageURL: user.ProfileImageURL,
		Role:            string(user.Role),
		EmailVerified:   user.EmailVerified,
		CreatedAt:       user.CreatedAt,
	}
}
