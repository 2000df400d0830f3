package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/", handler.Root)
	app.Get("/health", handler.Health)

	api := app.Group("/api")
	api.Get("/info", handler.Info)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Post("", handler.SaveProfile)
	profile.Get("", handler.GetProfile)

	api.Post("/mood", handler.AuthRequired, handler.SubmitMood)
	api.Post("/analyze-text", handler.AuthRequired, handler.AnalyzeText)
	api.Post("/update-report", handler.AuthRequired, handler.UpdateReport)

	api.Get("/check-stress/:user_id", handler.CheckStress)
	stress := api.Group("/stress-notifications")
	stress.Get("/all", handler.CheckAllStress)
	stress.Get("/history/:user_id", handler.NotificationHistory)
}
