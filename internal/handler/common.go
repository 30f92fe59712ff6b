package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errNoUser = errors.New("no authenticated user in context")

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64. JWT numeric claims decode as float64, but we
// tolerate the other representations a middleware might store.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errNoUser
}

// getUsername extracts the username claim stored by the JWT middleware.
func getUsername(c echo.Context) string {
	if s, ok := c.Get("username").(string); ok {
		return s
	}
	return ""
}
