package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fruitstand/web"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Fruits"
	}
	return c.Render(tmpl, data, web.Layout)
}
