package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"unwind/internal/models"
)

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	app, _, _ := newTestApp(t)

	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if detail := readDetail(t, response.Body); detail != "Missing authorization header" {
		t.Fatalf("expected missing header detail, got %q", detail)
	}
}

func TestAuthRequiredRejectsNonBearerScheme(t *testing.T) {
	app, _, _ := newTestApp(t)

	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	request.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if detail := readDetail(t, response.Body); detail != "Invalid authorization scheme" {
		t.Fatalf("expected scheme detail, got %q", detail)
	}
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	app, _, _ := newTestApp(t)

	request := authedJSONRequest(t, http.MethodGet, "/api/auth/me", nil, "not-a-jwt")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if detail := readDetail(t, response.Body); detail != "Invalid token" {
		t.Fatalf("expected invalid token detail, got %q", detail)
	}
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	app, database, _ := newTestApp(t)
	registerTestUser(t, app, "Maya", "maya@example.com", "StrongPass1")

	var user models.User
	if err := database.First(&user, "email = ?", "maya@example.com").Error; err != nil {
		t.Fatalf("load registered user: %v", err)
	}

	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	request := authedJSONRequest(t, http.MethodGet, "/api/auth/me", nil, expired)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if detail := readDetail(t, response.Body); detail != "Token has expired" {
		t.Fatalf("expected expired token detail, got %q", detail)
	}
}

func TestAuthRequiredRejectsTokenSignedWithWrongSecret(t *testing.T) {
	app, _, _ := newTestApp(t)

	claims := authClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	request := authedJSONRequest(t, http.MethodGet, "/api/auth/me", nil, forged)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if detail := readDetail(t, response.Body); detail != "Invalid token" {
		t.Fatalf("expected invalid token detail, got %q", detail)
	}
}

func TestAuthRequiredRejectsTokenForDeletedUser(t *testing.T) {
	app, database, _ := newTestApp(t)
	registerTestUser(t, app, "Maya", "maya@example.com", "StrongPass1")
	token := loginTestUser(t, app, "maya@example.com", "StrongPass1")

	if err := database.Where("email = ?", "maya@example.com").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	request := authedJSONRequest(t, http.MethodGet, "/api/auth/me", nil, token)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if detail := readDetail(t, response.Body); detail != "Invalid token" {
		t.Fatalf("expected invalid token detail, got %q", detail)
	}
}
