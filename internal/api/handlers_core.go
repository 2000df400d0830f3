package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Wellness Activity Recommender API",
		"version": serviceVersion,
	})
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": handler.timestamp(),
		"version":   serviceVersion,
		"service":   serviceName,
		"models": fiber.Map{
			"analyzer": handler.modelName,
			"reports":  handler.modelName,
		},
	})
}

func (handler *Handler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        "Wellness Activity Recommender API",
		"version":     serviceVersion,
		"description": serviceDescription,
		"endpoints": fiber.Map{
			"health":        "GET /health - Health check",
			"register":      "POST /api/auth/register - Create an account",
			"login":         "POST /api/auth/login - Obtain a Bearer token",
			"me":            "GET /api/auth/me - Current user",
			"profile":       "POST /api/profile - Save habit profile",
			"mood":          "POST /api/mood - Submit mood entry",
			"text_analysis": "POST /api/analyze-text - Recommendations without journaling",
			"update_report": "POST /api/update-report - Regenerate the combined report",
			"check_stress":  "GET /api/check-stress/:user_id - Evaluate one user now",
			"check_all":     "GET /api/stress-notifications/all - Sweep all users",
			"history":       "GET /api/stress-notifications/history/:user_id - Notification log",
		},
		"models": fiber.Map{
			"analyzer": handler.modelName,
			"reports":  handler.modelName,
		},
		"features": []string{
			"Text analysis",
			"Mood journaling with stress accumulation",
			"Habit profile management",
			"Generated wellness reports",
			"Proactive stress notifications",
		},
	})
}
