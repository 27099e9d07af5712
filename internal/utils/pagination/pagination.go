package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParseLimit reads the "limit" query parameter. A missing or non-numeric
// value yields 0, which the services treat as "use the default".
func ParseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

// Response wraps a list in the standard {"items": [...]} envelope.
func Response(items interface{}) fiber.Map {
	return fiber.Map{
		"items": items,
	}
}
