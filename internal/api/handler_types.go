package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"unwind/internal/db"
	"unwind/internal/services"
)

const (
	serviceName        = "wellness-recommender-api"
	serviceVersion     = "2.0.0"
	serviceDescription = "AI-powered personalized activity suggestions and stress tracking"
)

const authTokenTTL = 7 * 24 * time.Hour

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	secretKey     []byte
	location      *time.Location
	modelName     string
	repositories  *db.Repositories
	authService   *services.AuthService
	reports       *services.ReportService
	recommender   *services.Recommender
	notifier      *services.StressNotifier
	loginThrottle *loginThrottle
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type registerInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type profileInput struct {
	ScreentimeDaily   string `json:"screentime_daily" form:"screentime_daily"`
	JobDescription    string `json:"job_description" form:"job_description"`
	FreeHrActivities  string `json:"free_hr_activities" form:"free_hr_activities"`
	TravellingHr      string `json:"travelling_hr" form:"travelling_hr"`
	WeekendMood       string `json:"weekend_mood" form:"weekend_mood"`
	WeekDayMood       string `json:"week_day_mood" form:"week_day_mood"`
	FreeHrMorning     string `json:"free_hr_mrg" form:"free_hr_mrg"`
	FreeHrEvening     string `json:"free_hr_eve" form:"free_hr_eve"`
	SleepTime         string `json:"sleep_time" form:"sleep_time"`
	PreferredExercise string `json:"preferred_exercise" form:"preferred_exercise"`
	SocialPreference  string `json:"social_preference" form:"social_preference"`
	EnergyLevelRating string `json:"energy_level_rating" form:"energy_level_rating"`
	SleepPattern      string `json:"sleep_pattern" form:"sleep_pattern"`
	Hobbies           string `json:"hobbies" form:"hobbies"`
	WorkSchedule      string `json:"work_schedule" form:"work_schedule"`
	MealPreferences   string `json:"meal_preferences" form:"meal_preferences"`
	RelaxationMethods string `json:"relaxation_methods" form:"relaxation_methods"`
}

type moodInput struct {
	MoodText          string             `json:"mood_text" form:"mood_text"`
	AudioTranscript   string             `json:"audio_transcript" form:"audio_transcript"`
	Emotion           string             `json:"emotion" form:"emotion"`
	EmotionConfidence float64            `json:"emotion_confidence" form:"emotion_confidence"`
	EmotionDetails    map[string]float64 `json:"emotion_details"`
}

type analyzeTextInput struct {
	TextInput         string  `json:"text_input" form:"text_input"`
	Emotion           string  `json:"emotion" form:"emotion"`
	EmotionConfidence float64 `json:"emotion_confidence" form:"emotion_confidence"`
}

type profileResponse struct {
	UserID            uint      `json:"user_id"`
	ScreentimeDaily   string    `json:"screentime_daily"`
	JobDescription    string    `json:"job_description"`
	FreeHrActivities  string    `json:"free_hr_activities"`
	TravellingHr      string    `json:"travelling_hr"`
	WeekendMood       string    `json:"weekend_mood"`
	WeekDayMood       string    `json:"week_day_mood"`
	FreeHrMorning     string    `json:"free_hr_mrg"`
	FreeHrEvening     string    `json:"free_hr_eve"`
	SleepTime         string    `json:"sleep_time"`
	PreferredExercise string    `json:"preferred_exercise"`
	SocialPreference  string    `json:"social_preference"`
	EnergyLevelRating string    `json:"energy_level_rating"`
	SleepPattern      string    `json:"sleep_pattern"`
	Hobbies           string    `json:"hobbies"`
	WorkSchedule      string    `json:"work_schedule"`
	MealPreferences   string    `json:"meal_preferences"`
	RelaxationMethods string    `json:"relaxation_methods"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type notificationEventResponse struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	StressDay        int       `json:"stress_day"`
	SentAt           time.Time `json:"sent_at"`
}
