package api

import (
	"time"

	"unwind/internal/db"
	"unwind/internal/services"
)

// NewHandler wires the HTTP layer to its services. The notifier is
// built by the caller so its lifecycle (the periodic sweep) can be
// managed independently of request handling.
func NewHandler(repositories *db.Repositories, notifier *services.StressNotifier, generator services.Generator, secret string, modelName string, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}

	tracker := services.NewStressTracker(repositories.Reports)

	return &Handler{
		secretKey:     []byte(secret),
		location:      location,
		modelName:     modelName,
		repositories:  repositories,
		authService:   services.NewAuthService(repositories.Users),
		reports:       services.NewReportService(repositories.Habits, repositories.Reports, generator),
		recommender:   services.NewRecommender(repositories.Habits, repositories.Reports, tracker, generator),
		notifier:      notifier,
		loginThrottle: newLoginThrottle(loginAttemptLimit, loginAttemptWindow),
	}
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}

func (handler *Handler) timestamp() string {
	return handler.now().Format(time.RFC3339)
}
