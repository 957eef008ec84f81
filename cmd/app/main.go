package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restoonline/cmd"
	httpin "restoonline/internal/adapters/in/http"
	"restoonline/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.RunMigrations(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	root.Dispatcher().Start()
	defer root.Dispatcher().Stop()

	jobManager := root.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		PayDunyaBaseURL:    goDotEnvVariable("PAYDUNYA_BASE_URL"),
		PayDunyaMasterKey:  goDotEnvVariable("PAYDUNYA_MASTER_KEY"),
		PayDunyaPrivateKey: goDotEnvVariable("PAYDUNYA_PRIVATE_KEY"),
		PayDunyaToken:      goDotEnvVariable("PAYDUNYA_TOKEN"),
		PayDunyaStoreName:  goDotEnvVariable("PAYDUNYA_STORE_NAME"),
		PaymentCallbackURL: goDotEnvVariable("PAYMENT_CALLBACK_URL"),
		PaymentPollSpec:    goDotEnvVariable("PAYMENT_POLL_SPEC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	server := httpin.NewServer(root.CreateHTTPHandlers(), httpin.NewMetrics())
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil &&
			err != http.ErrServerClosed {
			log.Fatalf("Web server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}
