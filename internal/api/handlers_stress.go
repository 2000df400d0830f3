package api

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// The stress endpoints are operational surface: they are driven by
// schedulers and dashboards, not end users, and take the target user id
// from the path instead of a Bearer token.

func (handler *Handler) CheckStress(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("user_id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	result := handler.notifier.CheckUser(c.Context(), userID, handler.now())
	return handler.successData(c, result)
}

func (handler *Handler) CheckAllStress(c *fiber.Ctx) error {
	summary, err := handler.notifier.CheckAllUsers(c.Context())
	if err != nil {
		log.Printf("api: fleet stress check failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Stress check error")
	}

	return handler.successData(c, summary)
}

func (handler *Handler) NotificationHistory(c *fiber.Ctx) error {
	userID, err := parseUserIDParam(c.Params("user_id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	limit := c.QueryInt("limit", 10)
	if limit < 0 {
		limit = 10
	}

	events, err := handler.repositories.Notifications.ListRecentByUser(userID, limit)
	if err != nil {
		log.Printf("api: notification history for user %d failed: %v", userID, err)
		return apiError(c, fiber.StatusInternalServerError, "History fetch error")
	}

	notifications := make([]notificationEventResponse, 0, len(events))
	for _, event := range events {
		notifications = append(notifications, notificationEventResponse{
			ID:               event.ID,
			UserID:           event.UserID,
			NotificationType: event.NotificationType,
			Message:          event.Message,
			StressDay:        event.StressDay,
			SentAt:           event.SentAt,
		})
	}

	return handler.successData(c, fiber.Map{
		"user_id":       userID,
		"notifications": notifications,
		"count":         len(notifications),
	})
}

func parseUserIDParam(raw string) (uint, error) {
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}
