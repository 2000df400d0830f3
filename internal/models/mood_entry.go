package models

import "time"

// MoodEntry journals one mood submission together with the recommendations the
// model produced for it.
type MoodEntry struct {
	ID                uint    `gorm:"primaryKey"`
	UserID            uint    `gorm:"not null;index"`
	MoodText          string  `gorm:"not null"`
	AudioTranscript   string  `gorm:"not null;default:''"`
	Emotion           string  `gorm:"not null;default:''"`
	EmotionConfidence float64 `gorm:"not null;default:0"`
	Recommendations   string  `gorm:"not null;default:''"`
	CreatedAt         time.Time
}
