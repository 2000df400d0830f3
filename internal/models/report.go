package models

import "time"

// Report is the per-user wellness record. FirstReport is the baseline summary
// generated when the profile is saved; CombinedReport accumulates session
// activity. StressDay is the accumulated stress counter and is never negative;
// the row is created with StressDay 0 and never deleted.
type Report struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;uniqueIndex"`
	FirstReport    string `gorm:"not null;default:''"`
	CombinedReport string `gorm:"not null;default:''"`
	StressDay      int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
