package db

import (
	"path/filepath"
	"testing"

	"unwind/internal/models"
)

func TestNormalizedEmailIndexRejectsDuplicateRegistrations(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "unwind-email.db")
	database := openMigratedDatabase(t, databasePath)

	users := NewUserRepository(database)

	first := models.User{
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: "hash-one",
	}
	if err := users.Create(&first); err != nil {
		t.Fatalf("create first user: %v", err)
	}

	duplicate := models.User{
		Name:         "Dana Again",
		Email:        "  DANA@example.com ",
		PasswordHash: "hash-two",
	}
	if err := users.Create(&duplicate); err == nil {
		t.Fatal("expected duplicate normalized email insert to fail")
	}

	exists, err := users.ExistsByNormalizedEmail("dana@example.com")
	if err != nil {
		t.Fatalf("exists by normalized email: %v", err)
	}
	if !exists {
		t.Fatal("expected normalized lookup to match the stored user")
	}
}
