package models

import "time"

// HabitProfile holds the lifestyle questionnaire a user fills in once and may
// revise later. All answers are stored as free text; the prompt builder decides
// which of them are worth surfacing.
type HabitProfile struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"not null;uniqueIndex"`
	ScreentimeDaily   string `gorm:"not null;default:''"`
	JobDescription    string `gorm:"not null;default:''"`
	FreeHrActivities  string `gorm:"not null;default:''"`
	TravellingHr      string `gorm:"not null;default:''"`
	WeekendMood       string `gorm:"not null;default:''"`
	WeekDayMood       string `gorm:"not null;default:''"`
	FreeHrMorning     string `gorm:"column:free_hr_mrg;not null;default:''"`
	FreeHrEvening     string `gorm:"column:free_hr_eve;not null;default:''"`
	SleepTime         string `gorm:"not null;default:''"`
	PreferredExercise string `gorm:"not null;default:''"`
	SocialPreference  string `gorm:"not null;default:''"`
	EnergyLevelRating string `gorm:"not null;default:''"`
	SleepPattern      string `gorm:"not null;default:''"`
	Hobbies           string `gorm:"not null;default:''"`
	WorkSchedule      string `gorm:"not null;default:''"`
	MealPreferences   string `gorm:"not null;default:''"`
	RelaxationMethods string `gorm:"not null;default:''"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
