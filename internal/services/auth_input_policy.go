package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// NormalizeAuthEmail lowercases and trims an address and returns "" unless the
// result parses as a bare RFC 5322 address. Display-name forms such as
// "Maya <maya@example.com>" are rejected rather than stored verbatim.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return ""
	}
	return email
}

// NormalizeCredentialsInput applies the email policy and trims the password.
// Both halves must survive normalization for the pair to be usable.
func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", "", ErrAuthCredentialsInvalid
	}

	password := strings.TrimSpace(passwordRaw)
	if password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}

	return email, password, nil
}
