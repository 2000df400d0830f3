package services

import (
	"log"
	"strings"
)

// In-session alerts attached to counter updates.
const (
	stressResetAlert    = "🎉 Great mood! Your stress counter has been reset."
	stressHighAlert     = "🔴 HIGH STRESS ALERT: You have high stress level! Please consider taking a break and practicing relaxation techniques."
	stressModerateAlert = "🟡 STRESS ALERT: You have stress! Consider taking some time for self-care activities."
)

// ApplyAssessment advances the stress-day counter for one assessment and
// returns the new counter plus an in-session alert ("" when none).
//
// A happy mood clears the counter outright, even when the same response
// carried a high stress rating; the rating rules only run otherwise:
// level 3 adds one day, levels 4 and 5 add two, anything else leaves the
// counter alone. The threshold alerts apply to the accumulation rules
// only, never to a reset.
func ApplyAssessment(assessment MoodAssessment, currentStressDay int) (int, string) {
	if strings.EqualFold(assessment.Mood, "happy") {
		return 0, stressResetAlert
	}

	newStressDay := currentStressDay
	switch assessment.StressLevel {
	case 3:
		newStressDay = currentStressDay + 1
	case 4, 5:
		newStressDay = currentStressDay + 2
	}

	switch {
	case newStressDay >= 5:
		return newStressDay, stressHighAlert
	case newStressDay >= 4:
		return newStressDay, stressModerateAlert
	}
	return newStressDay, ""
}

type StressCounterStore interface {
	UpdateStressDay(userID uint, stressDay int) error
}

// StressTracker applies assessments and persists the resulting counter.
type StressTracker struct {
	reports StressCounterStore
}

func NewStressTracker(reports StressCounterStore) *StressTracker {
	return &StressTracker{reports: reports}
}

// Track runs ApplyAssessment and writes the counter back when it moved.
// A failed write is logged and the computed values are still returned:
// the session result must not be blocked by a persistence failure.
func (tracker *StressTracker) Track(userID uint, assessment MoodAssessment, currentStressDay int) (int, string) {
	newStressDay, alert := ApplyAssessment(assessment, currentStressDay)

	if newStressDay != currentStressDay {
		if err := tracker.reports.UpdateStressDay(userID, newStressDay); err != nil {
			log.Printf("stress tracker: persist stress_day=%d for user %d failed: %v", newStressDay, userID, err)
		}
	}

	return newStressDay, alert
}
