package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// RBAC enforces role-based access control against the closed role set.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// ListerRoles is the middleware variant gating routes reserved for roles that
// may own listings. Renters and anonymous users are rejected here; the
// verification gate applies afterwards in the service layer.
func ListerRoles() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !domain.Role(role).CanListProperties() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
