package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"unwind/internal/models"
	"unwind/internal/services"
)

// SubmitMood runs the full session pipeline: generate recommendations,
// track the stress counter, journal the entry and fold the session into
// the combined report. Analysis never fails; journal and report writes
// are logged when they do and the session result is returned anyway.
func (handler *Handler) SubmitMood(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input moodInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(input.MoodText) == "" {
		return apiError(c, fiber.StatusBadRequest, "mood_text is required")
	}

	session := services.SessionInput{
		Text:              input.MoodText,
		AudioTranscript:   input.AudioTranscript,
		Emotion:           input.Emotion,
		EmotionConfidence: input.EmotionConfidence,
		EmotionDetails:    input.EmotionDetails,
	}

	result := handler.recommender.Analyze(c.Context(), user.ID, session)

	entry := models.MoodEntry{
		UserID:            user.ID,
		MoodText:          input.MoodText,
		AudioTranscript:   input.AudioTranscript,
		Emotion:           input.Emotion,
		EmotionConfidence: input.EmotionConfidence,
		Recommendations:   result.Analysis,
	}
	if err := handler.repositories.MoodEntries.Create(&entry); err != nil {
		log.Printf("api: journal mood entry for user %d failed: %v", user.ID, err)
	}

	if err := handler.reports.RecordSession(c.Context(), user.ID, session, handler.now()); err != nil {
		if errors.Is(err, services.ErrNoHabitProfile) {
			log.Printf("api: skipped report update for user %d: no habit profile", user.ID)
		} else {
			log.Printf("api: report update for user %d failed: %v", user.ID, err)
		}
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Mood processed successfully and report updated",
		"data": fiber.Map{
			"user_id":            user.ID,
			"mood_text":          input.MoodText,
			"audio_transcript":   input.AudioTranscript,
			"emotion":            input.Emotion,
			"emotion_confidence": input.EmotionConfidence,
			"recommendations":    result.Analysis,
			"mood":               result.Mood,
			"stress_level":       result.StressLevel,
			"stress_day":         result.StressDay,
			"stress_alert":       nullableAlert(result.StressAlert),
			"timestamp":          handler.timestamp(),
		},
	})
}

// AnalyzeText produces recommendations and advances the stress counter
// without journaling the session or touching the combined report.
func (handler *Handler) AnalyzeText(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input analyzeTextInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(input.TextInput) == "" {
		return apiError(c, fiber.StatusBadRequest, "text_input is required")
	}

	emotion := input.Emotion
	if emotion == "" {
		emotion = "Neutral"
	}

	session := services.SessionInput{
		Text:              input.TextInput,
		Emotion:           emotion,
		EmotionConfidence: input.EmotionConfidence,
	}

	result := handler.recommender.Analyze(c.Context(), user.ID, session)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user_id":   user.ID,
			"analysis":  result.Analysis,
			"timestamp": handler.timestamp(),
		},
	})
}

// nullableAlert keeps the wire contract of the session endpoints: no
// alert is null, never an empty string.
func nullableAlert(alert string) any {
	if alert == "" {
		return nil
	}
	return alert
}
