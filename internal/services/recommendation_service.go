package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"unwind/internal/models"

	"gorm.io/gorm"
)

const (
	recommendationMaxTokens = 512
	generationTemperature   = 0.7
)

// insufficientOutputFallback replaces model output that did not contain
// the five recommendations the prompt demands. It keeps the labeled
// header so the mood parser still yields a neutral assessment.
const insufficientOutputFallback = "Mood: Neutral, stress_level: 0\nError: Model generated insufficient output. Please try again."

const generationFailurePrefix = "Mood: Neutral, stress_level: 0\nError: "

// Generator produces text from a system prompt and a user prompt. The
// concrete implementation lives in internal/ai; services only need this
// slice of it.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// SessionInput carries one mood submission after preprocessing: free
// text, a voice transcript, and the emotion read off an uploaded photo.
// Any subset may be present.
type SessionInput struct {
	Text              string
	AudioTranscript   string
	Emotion           string
	EmotionConfidence float64
	EmotionDetails    map[string]float64
}

func (session SessionInput) HasText() bool  { return session.Text != "" }
func (session SessionInput) HasAudio() bool { return session.AudioTranscript != "" }
func (session SessionInput) HasImage() bool { return session.Emotion != "" }

// AnalysisResult is everything one mood submission produces: the cleaned
// recommendation text, the parsed assessment, and the stress counter
// state after tracking.
type AnalysisResult struct {
	Analysis    string
	Mood        string
	StressLevel int
	StressDay   int
	StressAlert string
}

type recommenderHabitStore interface {
	FindByUserID(userID uint) (models.HabitProfile, error)
}

type recommenderReportStore interface {
	FindByUserID(userID uint) (models.Report, error)
}

// Recommender turns a mood submission into five activity recommendations
// plus a mood and stress assessment, and feeds the assessment into the
// stress tracker.
type Recommender struct {
	habits    recommenderHabitStore
	reports   recommenderReportStore
	tracker   *StressTracker
	generator Generator
}

func NewRecommender(habits recommenderHabitStore, reports recommenderReportStore, tracker *StressTracker, generator Generator) *Recommender {
	return &Recommender{
		habits:    habits,
		reports:   reports,
		tracker:   tracker,
		generator: generator,
	}
}

// Analyze runs the full per-session pipeline. It never fails: context
// lookups degrade to an empty profile, a generation failure becomes a
// labeled error analysis, and the parser tolerates any text. The caller
// always gets a result it can store and return.
func (recommender *Recommender) Analyze(ctx context.Context, userID uint, session SessionInput) AnalysisResult {
	var profile *models.HabitProfile
	if found, err := recommender.habits.FindByUserID(userID); err == nil {
		profile = &found
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("recommender: load habit profile for user %d failed: %v", userID, err)
	}

	combinedReport := ""
	stressDay := 0
	if report, err := recommender.reports.FindByUserID(userID); err == nil {
		combinedReport = report.CombinedReport
		stressDay = report.StressDay
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("recommender: load report for user %d failed: %v", userID, err)
	}

	prompt := buildRecommendationPrompt(profile, combinedReport, session)

	var analysis string
	raw, err := recommender.generator.Generate(ctx, recommendationSystemPrompt, prompt, recommendationMaxTokens, generationTemperature)
	if err != nil {
		log.Printf("recommender: generation for user %d failed: %v", userID, err)
		analysis = generationFailurePrefix + err.Error()
	} else {
		analysis = CleanRecommendationResponse(raw)
	}

	assessment := ParseMoodAndStress(analysis)
	newStressDay, alert := recommender.tracker.Track(userID, assessment, stressDay)

	return AnalysisResult{
		Analysis:    analysis,
		Mood:        assessment.Mood,
		StressLevel: assessment.StressLevel,
		StressDay:   newStressDay,
		StressAlert: alert,
	}
}

func buildRecommendationPrompt(profile *models.HabitProfile, combinedReport string, session SessionInput) string {
	return fmt.Sprintf(recommendationPromptTemplate, profileHighlights(profile, combinedReport), currentStateDigest(session))
}

// profileHighlights compresses the questionnaire into one line of
// labeled facts. Unanswered questions are skipped; a user with no
// profile at all gets an explicit placeholder.
func profileHighlights(profile *models.HabitProfile, combinedReport string) string {
	if profile == nil {
		return "No historical data available"
	}

	var parts []string
	appendPart := func(format, value string) {
		if value != "" {
			parts = append(parts, fmt.Sprintf(format, value))
		}
	}

	appendPart("Morning free time: %s mins", profile.FreeHrMorning)
	appendPart("Evening free time: %s mins", profile.FreeHrEvening)
	appendPart("Sleep: %s hours", profile.SleepPattern)
	appendPart("Work: %s hours/day", profile.WorkSchedule)
	appendPart("Screen time: %s mins/day", profile.ScreentimeDaily)
	appendPart("Preferred exercise: %s", profile.PreferredExercise)
	appendPart("Hobbies: %s", profile.Hobbies)
	appendPart("Social preference: %s", profile.SocialPreference)
	appendPart("Energy level rating: %s/5", profile.EnergyLevelRating)
	appendPart("Meal preferences: %s", profile.MealPreferences)
	appendPart("Relaxation methods: %s", profile.RelaxationMethods)
	appendPart("Recent activity: %s", combinedReport)

	if len(parts) == 0 {
		return "No historical data available"
	}
	return strings.Join(parts, " | ")
}

func currentStateDigest(session SessionInput) string {
	var parts []string
	if session.Text != "" {
		parts = append(parts, "User says: "+session.Text)
	}
	if session.AudioTranscript != "" {
		parts = append(parts, "Voice message: "+session.AudioTranscript)
	}
	if session.Emotion != "" {
		parts = append(parts, fmt.Sprintf("Detected emotion: %s (%.0f%% confidence)", session.Emotion, session.EmotionConfidence*100))
	}
	return strings.Join(parts, " | ")
}

// CleanRecommendationResponse trims model output down to the contract
// the prompt demands: one assessment header plus the numbered items 1-5
// in order, matched as "N.", "N -" or "N)". Preambles, blank lines and
// trailing chatter are dropped. Output missing any of the five items,
// or implausibly short, is replaced with the fallback text.
func CleanRecommendationResponse(raw string) string {
	var header string
	var items []string
	nextItem := 1

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if header == "" && len(items) == 0 {
			lowered := strings.ToLower(trimmed)
			if strings.Contains(lowered, "mood:") || strings.Contains(lowered, "stress_level:") {
				header = trimmed
				continue
			}
		}

		if nextItem <= 5 {
			marker := strconv.Itoa(nextItem)
			if strings.HasPrefix(trimmed, marker+".") || strings.HasPrefix(trimmed, marker+" -") || strings.HasPrefix(trimmed, marker+")") {
				items = append(items, trimmed)
				nextItem++
			}
		}
	}

	if len(items) < 5 {
		return insufficientOutputFallback
	}

	lines := items
	if header != "" {
		lines = append([]string{header}, items...)
	}
	cleaned := strings.TrimSpace(strings.Join(lines, "\n"))
	if len(cleaned) < 20 {
		return insufficientOutputFallback
	}
	return cleaned
}
