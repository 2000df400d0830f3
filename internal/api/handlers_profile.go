package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unwind/internal/models"
	"unwind/internal/services"
)

// SaveProfile upserts the questionnaire answers and generates the
// baseline report, so the stress state row exists before the user's
// first mood session.
func (handler *Handler) SaveProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	profile := input.toModel(user.ID)
	if err := handler.repositories.Habits.Upsert(&profile); err != nil {
		log.Printf("api: save profile for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "Profile save error")
	}

	if err := handler.reports.EnsureFirstReport(c.Context(), user.ID); err != nil {
		log.Printf("api: initial report for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "Report generation error")
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"message":   "Profile saved successfully",
		"user_id":   user.ID,
		"timestamp": handler.timestamp(),
	})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.repositories.Habits.FindByUserID(user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "Profile not found")
	}
	if err != nil {
		log.Printf("api: load profile for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "Profile fetch error")
	}

	return c.JSON(profileResponseFrom(profile))
}

// UpdateReport backfills the baseline report for users whose profile
// was saved before report generation worked. With a report already in
// place this is a no-op; session data flows in through /api/mood
// instead.
func (handler *Handler) UpdateReport(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	err := handler.reports.EnsureFirstReport(c.Context(), user.ID)
	if errors.Is(err, services.ErrNoHabitProfile) {
		return apiError(c, fiber.StatusNotFound, "User has no habit profile")
	}
	if err != nil {
		log.Printf("api: update report for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "Report update error")
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"message":   fmt.Sprintf("Report updated for user %d", user.ID),
		"timestamp": handler.timestamp(),
	})
}

func (input profileInput) toModel(userID uint) models.HabitProfile {
	return models.HabitProfile{
		UserID:            userID,
		ScreentimeDaily:   input.ScreentimeDaily,
		JobDescription:    input.JobDescription,
		FreeHrActivities:  input.FreeHrActivities,
		TravellingHr:      input.TravellingHr,
		WeekendMood:       input.WeekendMood,
		WeekDayMood:       input.WeekDayMood,
		FreeHrMorning:     input.FreeHrMorning,
		FreeHrEvening:     input.FreeHrEvening,
		SleepTime:         input.SleepTime,
		PreferredExercise: input.PreferredExercise,
		SocialPreference:  input.SocialPreference,
		EnergyLevelRating: input.EnergyLevelRating,
		SleepPattern:      input.SleepPattern,
		Hobbies:           input.Hobbies,
		WorkSchedule:      input.WorkSchedule,
		MealPreferences:   input.MealPreferences,
		RelaxationMethods: input.RelaxationMethods,
	}
}

func profileResponseFrom(profile models.HabitProfile) profileResponse {
	return profileResponse{
		UserID:            profile.UserID,
		ScreentimeDaily:   profile.ScreentimeDaily,
		JobDescription:    profile.JobDescription,
		FreeHrActivities:  profile.FreeHrActivities,
		TravellingHr:      profile.TravellingHr,
		WeekendMood:       profile.WeekendMood,
		WeekDayMood:       profile.WeekDayMood,
		FreeHrMorning:     profile.FreeHrMorning,
		FreeHrEvening:     profile.FreeHrEvening,
		SleepTime:         profile.SleepTime,
		PreferredExercise: profile.PreferredExercise,
		SocialPreference:  profile.SocialPreference,
		EnergyLevelRating: profile.EnergyLevelRating,
		SleepPattern:      profile.SleepPattern,
		Hobbies:           profile.Hobbies,
		WorkSchedule:      profile.WorkSchedule,
		MealPreferences:   profile.MealPreferences,
		RelaxationMethods: profile.RelaxationMethods,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}
