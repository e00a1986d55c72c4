package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  The roles
// accepted should correspond to the values stored in the JWT's "role"
// claim, e.g. ADMIN for exam-office staff or VIEWER for read-only
// accounts.  If the user's role is not in the allowed set, the request
// is aborted with a 403 Forbidden response.  It assumes a previous
// middleware has extracted the role into the context under the key
// "role".
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// JWTAuth stores the role as a string.  Missing or wrong
			// type is treated the same as a disallowed role.
			v := c.Get("role")
			role, ok := v.(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
