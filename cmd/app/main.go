package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"localshop/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app, err := cmd.NewCompositionRoot(configs, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.Sessions().Rehydrate(ctx); err != nil {
		logger.Warn("Session rehydration incomplete", "error", err)
	}
	cancel()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()
	defer app.CloseTracking()

	startLocalServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		APIBaseURL:         goDotEnvVariable("API_BASE_URL"),
		RealtimeURL:        goDotEnvVariable("REALTIME_URL"),
		CredentialsFile:    goDotEnvVariable("CREDENTIALS_FILE"),
		LocationReportSpec: goDotEnvVariableOr("LOCATION_REPORT_SPEC", "*/5 * * * * *"),
		SessionRefreshSpec: goDotEnvVariableOr("SESSION_REFRESH_SPEC", "0 * * * * *"),
	}
	config.AgentLat = floatEnv("AGENT_LAT")
	config.AgentLng = floatEnv("AGENT_LNG")
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvVariableOr(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func floatEnv(key string) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

// startLocalServer exposes the client's state to the local UI shell.
func startLocalServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.GET("/session", func(c echo.Context) error {
		session := app.Sessions().Snapshot()
		body := echo.Map{"status": session.Status.String()}
		if session.User != nil {
			body["user"] = echo.Map{
				"id":   session.User.ID().String(),
				"name": session.User.DisplayName(),
				"role": session.User.Role().String(),
			}
		}
		return c.JSON(http.StatusOK, body)
	})

	e.GET("/cart", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"quantity": app.Carts().Quantity(),
			"total":    app.Carts().Total().String(),
		})
	})

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	if err := e.Start(fmt.Sprintf("127.0.0.1:%s", port)); err != nil && err != http.ErrServerClosed {
		e.Logger.Fatal(err)
	}
}
