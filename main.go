package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/projection"
	"github.com/spendwise/backend/internal/router"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	baseURL, err := apiURL()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = connect()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Calculation cache
	if ttl, ok := os.LookupEnv("CACHE_TTL"); ok {
		v1.CalculationTTL, err = time.ParseDuration(ttl)
		if err != nil || v1.CalculationTTL <= 0 {
			log.Fatal().Str("CACHE_TTL", ttl).Msg("CACHE_TTL must be a positive duration, e.g. 30m")
		}
	}

	schedule, ok := os.LookupEnv("CACHE_SWEEP_SCHEDULE")
	if !ok {
		schedule = projection.DefaultSweepSchedule
	}

	sweeper, err := projection.NewSweeper(models.DB, schedule)
	if err != nil {
		log.Fatal().Err(err).Str("CACHE_SWEEP_SCHEDULE", schedule).Msg("Invalid cache sweep schedule")
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Error reporting is only enabled with a DSN
	if dsn, ok := os.LookupEnv("SENTRY_DSN"); ok {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:     dsn,
			Release: router.Version(),
		})
		if err != nil {
			log.Error().Err(err).Msg("Sentry could not be initialized, errors are not reported")
		}
		defer sentry.Flush(2 * time.Second)
	}

	r, err := router.Config(baseURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(r.Group(baseURL.Path))

	port, ok := os.LookupEnv("PORT")
	if !ok {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()
	log.Info().Str("port", port).Msg("Server started")

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}

// apiURL returns the URL the API is reachable at. All links
// in responses are relative to it.
func apiURL() (*url.URL, error) {
	value, ok := os.LookupEnv("API_URL")
	if !ok {
		return nil, errors.New("environment variable API_URL must be set")
	}

	u, err := url.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	return u, nil
}

// connect opens the PostgreSQL database if DB_HOST is set and
// the SQLite database in DATA_DIR otherwise.
func connect() error {
	if host, ok := os.LookupEnv("DB_HOST"); ok {
		log.Info().Str("host", host).Msg("Using PostgreSQL")
		return models.ConnectPostgres(fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s sslmode=prefer",
			host,
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
		))
	}

	dataDir, ok := os.LookupEnv("DATA_DIR")
	if !ok {
		dataDir = filepath.Join(".", "data")
	}

	// Create data directory
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		return err
	}

	return models.Connect(filepath.Join(dataDir, "spendwise.db"))
}
