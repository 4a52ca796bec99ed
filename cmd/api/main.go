package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/medibook/booking-api/internal/api/router"
	"github.com/medibook/booking-api/internal/booking"
	appconfig "github.com/medibook/booking-api/internal/config"
	"github.com/medibook/booking-api/internal/geo"
	"github.com/medibook/booking-api/internal/identity"
	"github.com/medibook/booking-api/internal/notify"
	"github.com/medibook/booking-api/internal/observability/metrics"
	"github.com/medibook/booking-api/internal/otp"
	"github.com/medibook/booking-api/internal/search"
	"github.com/medibook/booking-api/internal/slots"
	"github.com/medibook/booking-api/pkg/logging"
)

func main() {
	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Postgres
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slotStore := slots.NewStore(pool)

	// Redis (OTP state and geocode cache)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Email
	var mailer notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		mailer = sg
	} else {
		logger.Warn("sendgrid not configured, using stub email sender")
		mailer = notify.NewStubEmailSender(logger)
	}

	// Metrics
	bookingMetrics := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)

	// Geocoding
	geoClient := geo.NewClient(cfg.GeocoderBaseURL,
		geo.WithUserAgent(cfg.GeocoderUserAgent),
		geo.WithHTTPClient(&http.Client{Timeout: cfg.GeocoderTimeout}),
		geo.WithLogger(logger),
	)
	resolver := geo.NewResolver(geoClient, redisClient, cfg.GeocodeCacheTTL,
		geo.Location{Latitude: cfg.DefaultLatitude, Longitude: cfg.DefaultLongitude}, logger)

	// Services and handlers
	searchService := search.NewService(resolver, slotStore, bookingMetrics, logger)
	bookingService := booking.NewService(slotStore, mailer, bookingMetrics, logger)
	otpService := otp.NewService(otp.NewStore(redisClient, cfg.OTPTTL), mailer, !cfg.IsProduction(), logger)

	routerCfg := &router.Config{
		Logger:         logger,
		APIKey:         cfg.APIKey,
		SearchHandler:  search.NewHandler(searchService, cfg.DefaultWindow, cfg.DefaultRadiusKm, logger),
		BookingHandler: booking.NewHandler(bookingService, logger),
		GeoHandler:     geo.NewHandler(geoClient, cfg.AutocompleteCountry, logger),
		OTPHandler:     otp.NewHandler(otpService, logger),
		MetricsHandler: promhttp.Handler(),

		CORSAllowedOrigins: []string{"*"},
	}
	if cfg.FiscalCodeBaseURL != "" {
		routerCfg.IdentityHandler = identity.NewHandler(identity.NewClient(cfg.FiscalCodeBaseURL,
			identity.WithHTTPClient(&http.Client{Timeout: cfg.FiscalCodeTimeout}),
			identity.WithLogger(logger),
		))
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
