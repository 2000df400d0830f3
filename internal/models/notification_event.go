package models

import "time"

const (
	NotificationLevel1 = "level_1"
	NotificationLevel2 = "level_2"
	NotificationLevel3 = "level_3"
)

// NotificationEvent is one row of the append-only notification log. Rows are
// immutable once written; the most recent row per (user, type) drives the
// cooldown check.
type NotificationEvent struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"not null;index:idx_events_user_type_sent,priority:1"`
	NotificationType string    `gorm:"not null;index:idx_events_user_type_sent,priority:2"`
	Message          string    `gorm:"not null"`
	StressDay        int       `gorm:"not null"`
	SentAt           time.Time `gorm:"not null;index:idx_events_user_type_sent,priority:3,sort:desc"`
}
