package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"unwind/internal/ai"
	"unwind/internal/api"
	"unwind/internal/cli"
	"unwind/internal/db"
	"unwind/internal/services"
)

const defaultAllowedOrigins = "http://localhost:5173,http://localhost:3000"

func main() {
	resetEmail := flag.String("reset-password", "", "reset the password for the account with this email, then exit")
	flag.Parse()

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	dbPath := getEnv("DB_PATH", filepath.Join("data", "unwind.db"))

	if *resetEmail != "" {
		if err := cli.RunResetPasswordCommand(dbPath, *resetEmail); err != nil {
			log.Fatalf("reset password: %v", err)
		}
		return
	}

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	port := getEnv("PORT", "8080")
	allowedOrigins := getEnv("ALLOWED_ORIGINS", defaultAllowedOrigins)
	modelName := getEnv("OPENAI_MODEL", "gpt-4o-mini")

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repositories := db.NewRepositories(database)

	generator := ai.NewClient(os.Getenv("OPENAI_API_KEY"), modelName)
	if !generator.Enabled() {
		log.Print("ai: OPENAI_API_KEY not set, generation disabled; analyses degrade to sentinel output")
	}

	notifier := services.NewStressNotifier(repositories.Reports, repositories.Notifications, location, nil)
	handler := api.NewHandler(repositories, notifier, generator, secretKey, modelName, location)

	app := fiber.New(fiber.Config{
		AppName:               "Unwind",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(corsMiddlewareConfig(allowedOrigins)))

	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	notifier.Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Unwind listening on http://0.0.0.0:%s (db: %s, tz: %s, model: %s)", port, dbPath, location.String(), modelName)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// resolveSecretKey refuses to boot with a missing, placeholder or short
// signing key: every issued token would be forgeable otherwise.
func resolveSecretKey() (string, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}

	placeholders := []string{
		"change_me_in_production",
		"replace_with_at_least_32_random_characters",
	}
	for _, placeholder := range placeholders {
		if secret == placeholder {
			return "", errors.New("SECRET_KEY still uses the placeholder value")
		}
	}

	if len(secret) < 32 {
		return "", errors.New("SECRET_KEY must be at least 32 characters")
	}
	return secret, nil
}

func corsMiddlewareConfig(allowedOrigins string) cors.Config {
	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
