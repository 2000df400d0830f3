package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unwind/internal/db"
	"unwind/internal/services"
)

// Canned generator outputs for the flows the tests exercise.
const (
	testBaselineSummary = "General activity preferences: reading and walking. Energy dips in the afternoon."
	testCombinedSummary = "Activity trends: steady. Mood progression: improving. Consistency: good."
	testRecommendations = "Mood: sad, stress_level: 4\n" +
		"1. Morning hydration - Start your day with a glass of water.\n" +
		"2. Eye relaxation - Take a short break from the screen before lunch.\n" +
		"3. Relaxation tip - Listen to calm music if you feel stressed.\n" +
		"4. Evening stretch - Loosen up after work with light stretches.\n" +
		"5. Hobby refresh - Spend 30 minutes of free time on drawing."
)

type generatorCall struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// stubGenerator serves scripted outputs in order (the last one repeats)
// and records every call so tests can assert what was requested.
type stubGenerator struct {
	mu      sync.Mutex
	outputs []string
	err     error
	calls   []generatorCall
}

func (stub *stubGenerator) Generate(_ context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.calls = append(stub.calls, generatorCall{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
	})

	if stub.err != nil {
		return "", stub.err
	}
	if len(stub.outputs) == 0 {
		return "", nil
	}

	output := stub.outputs[0]
	if len(stub.outputs) > 1 {
		stub.outputs = stub.outputs[1:]
	}
	return output, nil
}

func (stub *stubGenerator) callCount() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return len(stub.calls)
}

func (stub *stubGenerator) recordedCalls() []generatorCall {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return append([]generatorCall(nil), stub.calls...)
}

func (stub *stubGenerator) setError(err error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.err = err
}

func (stub *stubGenerator) queue(outputs ...string) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.outputs = append(stub.outputs, outputs...)
}

// newTestApp boots the full HTTP surface against a throwaway SQLite
// file, with generation stubbed and the notifier's randomness pinned.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *stubGenerator) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "unwind-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repositories := db.NewRepositories(database)
	generator := &stubGenerator{outputs: []string{testBaselineSummary}}
	notifier := services.NewStressNotifier(
		repositories.Reports,
		repositories.Notifications,
		time.UTC,
		rand.New(rand.NewSource(1)),
	)
	handler := NewHandler(repositories, notifier, generator, "test-secret-key", "stub-model", time.UTC)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database, generator
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return request
}

func authedJSONRequest(t *testing.T, method, target string, payload any, token string) *http.Request {
	t.Helper()

	request := jsonRequest(t, method, target, payload)
	request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return request
}

func decodeJSONBody(t *testing.T, body io.Reader, target any) {
	t.Helper()

	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(raw), err)
	}
}

func readDetail(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSONBody(t, body, &payload)
	return payload["detail"]
}

func registerTestUser(t *testing.T, app *fiber.App, name, email, password string) {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("register: expected status 200, got %d", response.StatusCode)
	}
}

func loginTestUser(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d", response.StatusCode)
	}

	payload := struct {
		Token string `json:"token"`
	}{}
	decodeJSONBody(t, response.Body, &payload)
	if payload.Token == "" {
		t.Fatal("login: expected a token in the response")
	}
	return payload.Token
}

func fullProfilePayload() map[string]string {
	return map[string]string{
		"screentime_daily":    "6",
		"job_description":     "Software developer",
		"free_hr_activities":  "Reading, short walks",
		"travelling_hr":       "45",
		"weekend_mood":        "Relaxed",
		"week_day_mood":       "Busy",
		"free_hr_mrg":         "30",
		"free_hr_eve":         "90",
		"sleep_time":          "23:30",
		"preferred_exercise":  "Cycling",
		"social_preference":   "Small groups",
		"energy_level_rating": "3",
		"sleep_pattern":       "7",
		"hobbies":             "Drawing, gardening",
		"work_schedule":       "8",
		"meal_preferences":    "Vegetarian, regular meals",
		"relaxation_methods":  "Music, breathing exercises",
	}
}
