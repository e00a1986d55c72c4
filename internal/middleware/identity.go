package middleware

// identity.go holds the user identity helper shared by the rate limit and
// cache key builders.  JWTAuth stores the JWT "sub" claim under "user_id";
// numeric claims arrive as float64 after JSON decoding, so both string and
// numeric forms are handled.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts a stable user identifier from the request context.
// It returns "anon" when no user is authenticated.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return "anon"
}
