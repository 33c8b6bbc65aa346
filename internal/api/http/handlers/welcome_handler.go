package handlers

import "github.com/gofiber/fiber/v2"

// Welcome handles GET /.
func Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "My e-commerce app"})
}
