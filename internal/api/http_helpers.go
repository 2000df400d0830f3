package api

import "github.com/gofiber/fiber/v2"

// apiError keeps the error body shape the original clients expect:
// every failure is {"detail": message}.
func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"detail": message})
}

// successData wraps payloads in the {"status","data","timestamp"}
// envelope used by the data-bearing endpoints.
func (handler *Handler) successData(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status":    "success",
		"data":      data,
		"timestamp": handler.timestamp(),
	})
}
