package handler

// common.go holds helpers shared by the hall, roster and plan handlers.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID reads the authenticated user's ID from the request context.
// JWTAuth stores the JWT "sub" claim under "user_id"; JSON decoding
// turns numeric claims into float64, so both forms are handled.  The
// second return value is false when no usable ID is present.
func getUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// pathID parses the :id path parameter as an unsigned integer.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
