package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverrideKey is the query parameter or form field an HTML form uses
// to ask for a method it cannot send.
const MethodOverrideKey = "_method"

var overridable = map[string]bool{
	fiber.MethodPut:    true,
	fiber.MethodPatch:  true,
	fiber.MethodDelete: true,
}

// MethodOverride reroutes a POST carrying _method=PUT|PATCH|DELETE, in the
// query string or the form body, as that method. It must be registered
// before any route.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		m := c.Query(MethodOverrideKey)
		if m == "" {
			m = c.FormValue(MethodOverrideKey)
		}
		m = strings.ToUpper(strings.TrimSpace(m))
		if overridable[m] {
			c.Method(m)
		}
		return c.Next()
	}
}
