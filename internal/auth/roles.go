package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthsync-service/internal/domain"
	apperrors "github.com/spec-kit/healthsync-service/pkg/util"
)

// RequireRole ensures the principal's current role matches one of the allowed
// roles. The check reads the role from the freshly loaded user record, never
// from the token claim, since the role can change after issuance.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin is a convenience guard for the admin surface.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
