package cli

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unwind/internal/db"
	"unwind/internal/security"
	"unwind/internal/services"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand handles the -reset-password flag: it replaces
// the account's password hash and prints the outcome. On a terminal the
// operator may type the new password; otherwise, or when the prompt is
// left blank, a temporary password is generated and printed.
func RunResetPasswordCommand(databasePath, email string) error {
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	requested := ""
	if stdinIsTerminal() {
		requested, err = promptPasswordNoEcho("New password (leave blank to generate a temporary one): ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	temporary, err := resetPassword(database, email, requested)
	if err != nil {
		return err
	}

	fmt.Println("✅ Password reset successful")
	if temporary != "" {
		fmt.Printf("Temporary password: %s\n", temporary)
		fmt.Println("Ask the user to sign in and change it right away.")
	}
	return nil
}

// resetPassword stores a fresh bcrypt hash for the account. An empty
// password means "generate one": the generated password is returned so
// the caller can hand it to the user, and is never logged.
func resetPassword(database *gorm.DB, emailRaw, password string) (string, error) {
	email := services.NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", fmt.Errorf("invalid email address %q", emailRaw)
	}

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("user %s not found", email)
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	temporary := ""
	if strings.TrimSpace(password) == "" {
		temporary, err = security.TemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", fmt.Errorf("generate temporary password: %w", err)
		}
		password = temporary
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePasswordHash(user.ID, string(hash)); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}

	return temporary, nil
}
