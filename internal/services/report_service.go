package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"unwind/internal/models"

	"gorm.io/gorm"
)

const reportMaxTokens = 1000

const noPreviousLogsPlaceholder = "No previous logs available."

// ErrNoHabitProfile is returned when report work is requested for a user
// who has not filled in the questionnaire yet. Reports are always
// derived from a profile, so there is nothing to do.
var ErrNoHabitProfile = errors.New("user has no habit profile")

type reportHabitStore interface {
	FindByUserID(userID uint) (models.HabitProfile, error)
}

type reportStore interface {
	FindByUserID(userID uint) (models.Report, error)
	Create(report *models.Report) error
	UpdateCombinedReport(userID uint, combinedReport string) error
}

// ReportService maintains the two generated summaries per user: the
// baseline first report written when the profile is saved, and the
// combined report that folds in every subsequent session.
type ReportService struct {
	habits    reportHabitStore
	reports   reportStore
	generator Generator
}

func NewReportService(habits reportHabitStore, reports reportStore, generator Generator) *ReportService {
	return &ReportService{
		habits:    habits,
		reports:   reports,
		generator: generator,
	}
}

// EnsureFirstReport creates the baseline report row for a user who does
// not have one yet. An existing row is left untouched, whatever its
// content: the baseline is generated once per user.
func (service *ReportService) EnsureFirstReport(ctx context.Context, userID uint) error {
	profile, err := service.habits.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoHabitProfile
	}
	if err != nil {
		return fmt.Errorf("load habit profile: %w", err)
	}

	_, err = service.reports.FindByUserID(userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load report: %w", err)
	}

	report := models.Report{
		UserID:      userID,
		FirstReport: service.generateFirstSummary(ctx, profile),
	}
	if err := service.reports.Create(&report); err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	log.Printf("reports: first report stored for user %d", userID)
	return nil
}

// RecordSession folds one mood submission into the combined report. A
// user without a report row gets the baseline generated first and the
// session becomes their first activity log.
func (service *ReportService) RecordSession(ctx context.Context, userID uint, session SessionInput, now time.Time) error {
	profile, err := service.habits.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoHabitProfile
	}
	if err != nil {
		return fmt.Errorf("load habit profile: %w", err)
	}

	baseline := ""
	previousLogs := noPreviousLogsPlaceholder

	report, err := service.reports.FindByUserID(userID)
	switch {
	case err == nil:
		baseline = report.FirstReport
		if report.CombinedReport != "" {
			previousLogs = report.CombinedReport
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		baseline = service.generateFirstSummary(ctx, profile)
		created := models.Report{UserID: userID, FirstReport: baseline}
		if createErr := service.reports.Create(&created); createErr != nil {
			return fmt.Errorf("create report: %w", createErr)
		}
	default:
		return fmt.Errorf("load report: %w", err)
	}

	combinedInput := combinedReportInput(baseline, previousLogs, reportSessionDigest(session, now))
	combined := service.generateSummary(ctx, combinedReportSystemPrompt, reportUserPrompt("", combinedInput))

	if err := service.reports.UpdateCombinedReport(userID, combined); err != nil {
		return fmt.Errorf("update combined report: %w", err)
	}

	log.Printf("reports: combined report updated for user %d", userID)
	return nil
}

func (service *ReportService) generateFirstSummary(ctx context.Context, profile models.HabitProfile) string {
	prompt := reportUserPrompt(habitColumnContext(), habitDigest(profile))
	return service.generateSummary(ctx, firstReportSystemPrompt, prompt)
}

// generateSummary never fails: a generation error is recorded inside the
// summary text itself so the report row still reflects the attempt.
func (service *ReportService) generateSummary(ctx context.Context, systemPrompt, userPrompt string) string {
	summary, err := service.generator.Generate(ctx, systemPrompt, userPrompt, reportMaxTokens, generationTemperature)
	if err != nil {
		log.Printf("reports: generation failed: %v", err)
		return "Error generating report: " + err.Error()
	}
	return summary
}

func reportUserPrompt(columnContext, text string) string {
	return fmt.Sprintf("%s\nUser Data to Analyze:\n\n%s\n\nPlease provide a detailed, structured report based on the above data.", columnContext, text)
}

func habitColumnContext() string {
	var builder strings.Builder
	builder.WriteString("\n**Data Field Descriptions:**\n")
	for _, column := range habitColumnDescriptions {
		fmt.Fprintf(&builder, "- %s: %s\n", column.Column, column.Description)
	}
	return builder.String()
}

// habitDigest lays the questionnaire out as labeled lines, one per
// column in the order the descriptions document them.
func habitDigest(profile models.HabitProfile) string {
	values := map[string]string{
		"created_at":          profile.CreatedAt.Format("2006-01-02 15:04:05"),
		"screentime_daily":    profile.ScreentimeDaily,
		"job_description":     profile.JobDescription,
		"free_hr_activities":  profile.FreeHrActivities,
		"travelling_hr":       profile.TravellingHr,
		"weekend_mood":        profile.WeekendMood,
		"week_day_mood":       profile.WeekDayMood,
		"free_hr_mrg":         profile.FreeHrMorning,
		"free_hr_eve":         profile.FreeHrEvening,
		"sleep_time":          profile.SleepTime,
		"preferred_exercise":  profile.PreferredExercise,
		"social_preference":   profile.SocialPreference,
		"energy_level_rating": profile.EnergyLevelRating,
		"sleep_pattern":       profile.SleepPattern,
		"hobbies":             profile.Hobbies,
		"work_schedule":       profile.WorkSchedule,
		"meal_preferences":    profile.MealPreferences,
		"relaxation_methods":  profile.RelaxationMethods,
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- Habit Entry (ID: %d) ---\n", profile.UserID)
	for _, column := range habitColumnDescriptions {
		value, ok := values[column.Column]
		if !ok {
			continue
		}
		fmt.Fprintf(&builder, "%s: %s\n", titleCaseColumn(column.Column), value)
	}
	return builder.String()
}

func titleCaseColumn(column string) string {
	words := strings.Split(column, "_")
	for index, word := range words {
		if word == "" {
			continue
		}
		words[index] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

func reportSessionDigest(session SessionInput, now time.Time) string {
	text := session.Text
	if text == "" {
		text = "Not provided"
	}
	transcript := session.AudioTranscript
	if transcript == "" {
		transcript = "Not provided"
	}
	emotion := session.Emotion
	if emotion == "" {
		emotion = "Not detected"
	}

	details := session.EmotionDetails
	if details == nil {
		details = map[string]float64{}
	}
	detailsJSON, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return fmt.Sprintf(`=== CURRENT SESSION INPUT ===
Timestamp: %s

Text Input: %s

Audio Transcript: %s

Emotion Detected: %s
Emotion Confidence: %.2f%%

Emotion Details:
%s

Input Flags:
- Has Text: %t
- Has Audio: %t
- Has Image: %t`,
		now.Format(time.RFC3339), text, transcript, emotion,
		session.EmotionConfidence*100, detailsJSON,
		session.HasText(), session.HasAudio(), session.HasImage())
}

func combinedReportInput(firstReport, previousLogs, sessionDigest string) string {
	return fmt.Sprintf(`=== INITIAL PROFILE (Baseline) ===
%s

=== PREVIOUS ACTIVITY LOGS ===
%s

=== NEW ACTIVITY DATA (Current Input from Preprocessor) ===
%s`, firstReport, previousLogs, sessionDigest)
}
