package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"unwind/internal/models"
)

const contextUserKey = "current_user"

// AuthRequired guards the per-user endpoints. The verified user is
// stashed in the request locals for handlers to read.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, message := handler.authenticateRequest(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, message)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// authenticateRequest validates the Bearer token and loads the user it
// names. The returned message is safe to surface to clients.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, string) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return nil, "Missing authorization header"
	}

	scheme, rawToken, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return nil, "Invalid authorization scheme"
	}
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, "Invalid authorization scheme"
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, "Token has expired"
		}
		return nil, "Invalid token"
	}
	if !token.Valid {
		return nil, "Invalid token"
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, "Token has expired"
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, "Invalid token"
	}

	return &user, ""
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
