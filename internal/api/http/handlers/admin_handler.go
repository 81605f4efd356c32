package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthsync-service/internal/api/dto"
	"github.com/spec-kit/healthsync-service/internal/auth"
	"github.com/spec-kit/healthsync-service/internal/domain"
	"github.com/spec-kit/healthsync-service/internal/service"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// AdminHandler exposes the administrative surface. Routes are registered
// behind the admin role guard.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListUsers GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		items = append(items, adminUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": items})
}

// GetUser GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.admin.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": adminUserResponse(user)})
}

// DeleteUserHistory DELETE /api/admin/history/:id.
func (h *AdminHandler) DeleteUserHistory(c *fiber.Ctx) error {
	deleted, err := h.admin.DeleteUserHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "user history deleted",
		"deleted": deleted,
	})
}

// PromoteUser PUT /api/admin/promote/:id.
func (h *AdminHandler) PromoteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.admin.PromoteUser(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user promoted to admin"})
}

// Stats GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stats": dto.PlatformStatsResponse{
		TotalUsers:       stats.TotalUsers,
		TotalPredictions: stats.TotalPredictions,
		RecentSignups:    stats.RecentSignups,
	}})
}

func adminUserResponse(user *domain.User) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Age:           user.Age,
		Gender:        user.Gender,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
	}
}
