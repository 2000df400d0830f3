package services

import (
	"time"

	"unwind/internal/models"
)

// Proactive notification copy per tier. level_1 rotates through a small
// set so repeated morning reminders do not read identically.
var levelOneMessages = []string{
	"Calm down yourself - take a moment to breathe",
	"Take a deep breath - inhale peace, exhale stress",
	"Take a glass of water - stay hydrated and refreshed",
}

const (
	levelTwoMessage   = "You are stressed for a long time. Get time and make rest. Your well-being matters."
	levelThreeMessage = "⚠️ HIGH STRESS ALERT: Please consider visiting a doctor. Your health is important."
)

const (
	PriorityModerate = "moderate"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Two notifications of the same type for the same user are never sent
// closer together than this.
const notificationCooldown = 2 * time.Hour

// DecisionOutcome classifies what the eligibility policy concluded for
// one check. OutsideWindow and Cooldown are deliberately distinct from
// NoAction: the counter called for a notification but a gate held it.
type DecisionOutcome string

const (
	OutcomeNoAction      DecisionOutcome = "no_action"
	OutcomeOutsideWindow DecisionOutcome = "outside_window"
	OutcomeCooldown      DecisionOutcome = "cooldown"
	OutcomeSend          DecisionOutcome = "send"
)

// Decision is the result of one eligibility evaluation. Type is set for
// every outcome except NoAction; Message and Priority only for Send.
type Decision struct {
	Outcome  DecisionOutcome
	Type     string
	Message  string
	Priority string
}

// tierFor maps the counter to a notification tier, highest first. pick
// chooses the level_1 message index and is injected so tests can pin it.
func tierFor(stressDay int, pick func(n int) int) (string, string, string) {
	switch {
	case stressDay > 50:
		return models.NotificationLevel3, levelThreeMessage, PriorityCritical
	case stressDay > 10:
		return models.NotificationLevel2, levelTwoMessage, PriorityHigh
	case stressDay > 5:
		return models.NotificationLevel1, levelOneMessages[pick(len(levelOneMessages))], PriorityModerate
	}
	return "", "", ""
}

// withinMorningWindow reports whether level_1 reminders may go out.
// Only the 07:00-09:00 local window qualifies; higher tiers are urgent
// enough to skip the gate.
func withinMorningWindow(now time.Time) bool {
	hour := now.Hour()
	return hour >= 7 && hour < 9
}
