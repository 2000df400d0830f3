package api

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"unwind/internal/models"
	"unwind/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	_, err := handler.authService.Register(input.Name, input.Email, input.Password)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusBadRequest, "Email already registered")
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "Invalid email or password")
	case err != nil:
		log.Printf("api: registration failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Registration failed")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User registered successfully",
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	key := clientKey(c)
	now := handler.now()
	if handler.loginThrottle.blocked(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "Too many login attempts, please try again later")
	}

	user, err := handler.authService.Login(input.Email, input.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		handler.loginThrottle.recordFailure(key, now)
		return apiError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		log.Printf("api: login failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "Login failed")
	}
	handler.loginThrottle.clear(key)

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		log.Printf("api: token build for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "Login failed")
	}

	hasProfile := handler.hasProfile(user.ID)
	return c.JSON(fiber.Map{
		"token":      token,
		"id":         user.ID,
		"hasProfile": hasProfile,
		"user": fiber.Map{
			"id":         user.ID,
			"email":      user.Email,
			"name":       user.Name,
			"hasProfile": hasProfile,
		},
	})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"hasProfile": handler.hasProfile(user.ID),
	})
}

// hasProfile never fails the caller: a lookup error reads as "no
// profile yet", matching how the login flow treated it.
func (handler *Handler) hasProfile(userID uint) bool {
	exists, err := handler.repositories.Habits.ExistsByUserID(userID)
	if err != nil {
		log.Printf("api: profile check for user %d failed: %v", userID, err)
		return false
	}
	return exists
}

func (handler *Handler) buildToken(user *models.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = authTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}
