package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"unwind/internal/models"

	"gorm.io/gorm"
)

// Check statuses reported to callers of CheckUser and CheckAllUsers.
const (
	StatusNoReport      = "no_report"
	StatusOK            = "ok"
	StatusOutsideWindow = "outside_time_window"
	StatusCooldown      = "cooldown"
	StatusSent          = "notification_sent"
	StatusError         = "error"
)

const sweepInterval = 2 * time.Hour

// CheckResult is the caller-facing outcome of a single stress check.
type CheckResult struct {
	Status           string     `json:"status"`
	Message          string     `json:"message,omitempty"`
	NotificationType string     `json:"notification_type,omitempty"`
	Priority         string     `json:"priority,omitempty"`
	StressDay        int        `json:"stress_day"`
	CurrentHour      *int       `json:"current_hour,omitempty"`
	SentAt           *time.Time `json:"sent_at,omitempty"`
}

// UserCheck pairs a sweep entry with the user it belongs to.
type UserCheck struct {
	UserID uint        `json:"user_id"`
	Result CheckResult `json:"result"`
}

// SweepResult summarizes one fleet-wide stress check.
type SweepResult struct {
	TotalUsers        int         `json:"total_users"`
	NotificationsSent int         `json:"notifications_sent"`
	Timestamp         time.Time   `json:"timestamp"`
	Results           []UserCheck `json:"results"`
}

type notifierReportStore interface {
	FindByUserID(userID uint) (models.Report, error)
	ListAll() ([]models.Report, error)
}

type notificationEventStore interface {
	Create(event *models.NotificationEvent) error
	FindLatestByUserAndType(userID uint, notificationType string) (models.NotificationEvent, error)
}

// StressNotifier watches the persisted stress counters and decides, per
// user, whether a proactive notification is due. Decisions are recorded
// in the notification log; delivery over Telegram is best-effort and
// only active when the bot credentials are configured.
type StressNotifier struct {
	reports  notifierReportStore
	events   notificationEventStore
	location *time.Location
	botToken string
	chatID   string
	telegram bool
	client   *http.Client

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStressNotifier reads Telegram credentials from the environment.
// rng drives the level_1 message choice; pass a seeded source in tests,
// nil for a time-seeded default.
func NewStressNotifier(reports notifierReportStore, events notificationEventStore, location *time.Location, rng *rand.Rand) *StressNotifier {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	if location == nil {
		location = time.Local
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &StressNotifier{
		reports:  reports,
		events:   events,
		location: location,
		botToken: botToken,
		chatID:   chatID,
		telegram: botToken != "" && chatID != "",
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		rng: rng,
	}
}

// Start launches the periodic fleet sweep: one pass immediately, then
// one per cooldown interval until the context ends.
func (notifier *StressNotifier) Start(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	go func() {
		defer ticker.Stop()

		notifier.runSweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				notifier.runSweep(ctx)
			}
		}
	}()
}

func (notifier *StressNotifier) runSweep(ctx context.Context) {
	summary, err := notifier.CheckAllUsers(ctx)
	if err != nil {
		log.Printf("stress notifier: sweep failed: %v", err)
		return
	}
	log.Printf("stress notifier: sweep checked %d users, sent %d notifications", summary.TotalUsers, summary.NotificationsSent)
}

// Evaluate runs the eligibility policy for one counter reading. A Send
// outcome has already been appended to the notification log when this
// returns; a failed append is logged but does not revoke the decision.
func (notifier *StressNotifier) Evaluate(userID uint, stressDay int, now time.Time) Decision {
	notificationType, message, priority := tierFor(stressDay, notifier.pickMessageIndex)
	if notificationType == "" {
		return Decision{Outcome: OutcomeNoAction}
	}

	if notificationType == models.NotificationLevel1 && !withinMorningWindow(now) {
		return Decision{Outcome: OutcomeOutsideWindow, Type: notificationType}
	}

	if !notifier.cooldownElapsed(userID, notificationType, now) {
		return Decision{Outcome: OutcomeCooldown, Type: notificationType}
	}

	event := models.NotificationEvent{
		UserID:           userID,
		NotificationType: notificationType,
		Message:          message,
		StressDay:        stressDay,
		SentAt:           now,
	}
	if err := notifier.events.Create(&event); err != nil {
		log.Printf("stress notifier: log %s notification for user %d failed: %v", notificationType, userID, err)
	}

	return Decision{Outcome: OutcomeSend, Type: notificationType, Message: message, Priority: priority}
}

// cooldownElapsed fails open: a store hiccup must not starve a stressed
// user of notifications.
func (notifier *StressNotifier) cooldownElapsed(userID uint, notificationType string, now time.Time) bool {
	latest, err := notifier.events.FindLatestByUserAndType(userID, notificationType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	if err != nil {
		log.Printf("stress notifier: cooldown lookup for user %d failed: %v", userID, err)
		return true
	}
	return now.Sub(latest.SentAt) >= notificationCooldown
}

func (notifier *StressNotifier) pickMessageIndex(n int) int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.rng.Intn(n)
}

// CheckUser evaluates one user's counter and reports what happened as a
// status the HTTP layer can hand straight to clients.
func (notifier *StressNotifier) CheckUser(ctx context.Context, userID uint, now time.Time) CheckResult {
	report, err := notifier.reports.FindByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckResult{
			Status:  StatusNoReport,
			Message: "User has no report data",
		}
	}
	if err != nil {
		log.Printf("stress notifier: load report for user %d failed: %v", userID, err)
		return CheckResult{
			Status:  StatusError,
			Message: err.Error(),
		}
	}

	decision := notifier.Evaluate(userID, report.StressDay, now)

	switch decision.Outcome {
	case OutcomeOutsideWindow:
		hour := now.Hour()
		return CheckResult{
			Status:      StatusOutsideWindow,
			Message:     "Level 1 notifications only sent between 7-9 AM",
			StressDay:   report.StressDay,
			CurrentHour: &hour,
		}
	case OutcomeCooldown:
		return CheckResult{
			Status:    StatusCooldown,
			Message:   "Notification sent recently, waiting for cooldown",
			StressDay: report.StressDay,
		}
	case OutcomeSend:
		notifier.deliver(ctx, userID, decision)
		sentAt := now
		return CheckResult{
			Status:           StatusSent,
			NotificationType: decision.Type,
			Priority:         decision.Priority,
			Message:          decision.Message,
			StressDay:        report.StressDay,
			SentAt:           &sentAt,
		}
	}

	return CheckResult{
		Status:    StatusOK,
		Message:   "Stress level is normal",
		StressDay: report.StressDay,
	}
}

// CheckAllUsers sweeps every user that has a report row. Users are
// evaluated independently; one bad row is recorded as an error result
// and the sweep moves on.
func (notifier *StressNotifier) CheckAllUsers(ctx context.Context) (SweepResult, error) {
	reports, err := notifier.reports.ListAll()
	if err != nil {
		return SweepResult{}, fmt.Errorf("list reports: %w", err)
	}

	now := time.Now().In(notifier.location)
	summary := SweepResult{
		TotalUsers: len(reports),
		Timestamp:  now,
		Results:    make([]UserCheck, 0, len(reports)),
	}

	for _, report := range reports {
		result := notifier.CheckUser(ctx, report.UserID, now)
		summary.Results = append(summary.Results, UserCheck{UserID: report.UserID, Result: result})
		if result.Status == StatusSent {
			summary.NotificationsSent++
		}
	}

	return summary, nil
}

func (notifier *StressNotifier) deliver(ctx context.Context, userID uint, decision Decision) {
	if !notifier.telegram {
		return
	}

	message := fmt.Sprintf("Unwind stress alert for user %d (%s): %s", userID, decision.Priority, decision.Message)
	if err := notifier.sendTelegram(ctx, message); err != nil {
		log.Printf("stress notifier: telegram delivery for user %d failed: %v", userID, err)
	}
}

func (notifier *StressNotifier) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
