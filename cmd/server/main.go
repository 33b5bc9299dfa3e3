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

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/veramar/litoral/internal/config"
	"github.com/veramar/litoral/internal/genai"
	"github.com/veramar/litoral/internal/handler"
	"github.com/veramar/litoral/internal/identity"
	"github.com/veramar/litoral/internal/repository"
	"github.com/veramar/litoral/internal/service"
	"github.com/veramar/litoral/internal/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	cookies := session.DevelopmentCookieOptions()
	if cfg.IsProduction() {
		cookies = session.ProductionCookieOptions(cfg.CookieDomain)
	}

	userRepo := repository.NewUserRepository(db)
	beachRepo := repository.NewBeachRepository(db)
	trailRepo := repository.NewTrailRepository(db)
	tourRepo := repository.NewTourRepository(db)
	eventRepo := repository.NewEventRepository(db)
	guideRepo := repository.NewGuideRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)

	authSvc := service.NewAuthService(userRepo, session.NewRedisStore(redisClient), verifier, service.AuthConfig{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		FrontendURL:        cfg.FrontendURL,
		SessionTTL:         cfg.SessionTTL,
	})
	catalogSvc := service.NewCatalogService(beachRepo, trailRepo, tourRepo, eventRepo, guideRepo)
	bookingSvc := service.NewBookingService(bookingRepo, tourRepo, eventRepo)
	itinerarySvc := service.NewItineraryService(itineraryRepo,
		genai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel))

	authHandler := handler.NewAuthHandler(authSvc, cookies)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	itineraryHandler := handler.NewItineraryHandler(itinerarySvc)
	adminHandler := handler.NewAdminHandler(userRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewAppValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(handler.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderContentType},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return handler.JSON(c, http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.POST("/google", authHandler.Verify)
	auth.GET("/google", authHandler.GoogleRedirect)
	auth.GET("/google/callback", authHandler.GoogleCallback)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Public catalog reads
	api.GET("/beaches", catalogHandler.ListBeaches)
	api.GET("/beaches/:id", catalogHandler.GetBeach)
	api.GET("/trails", catalogHandler.ListTrails)
	api.GET("/trails/:id", catalogHandler.GetTrail)
	api.GET("/tours", catalogHandler.ListTours)
	api.GET("/tours/:id", catalogHandler.GetTour)
	api.GET("/events", catalogHandler.ListEvents)
	api.GET("/events/:id", catalogHandler.GetEvent)
	api.GET("/guides", catalogHandler.ListGuides)

	// Authenticated routes
	authed := api.Group("", handler.SessionAuth(authSvc))
	authed.PATCH("/auth/profile", authHandler.CompleteProfile)

	complete := authed.Group("", handler.RequireCompleteProfile)
	complete.POST("/tours", catalogHandler.CreateTour)
	complete.PUT("/tours/:id", catalogHandler.UpdateTour)
	complete.DELETE("/tours/:id", catalogHandler.DeleteTour)
	complete.POST("/events", catalogHandler.CreateEvent)
	complete.PUT("/events/:id", catalogHandler.UpdateEvent)
	complete.DELETE("/events/:id", catalogHandler.DeleteEvent)
	complete.GET("/guides/me", catalogHandler.MyGuideProfile)
	complete.PUT("/guides/me", catalogHandler.UpsertGuideProfile)
	complete.POST("/bookings/tours", bookingHandler.BookTour)
	complete.POST("/bookings/events", bookingHandler.BookEvent)
	complete.GET("/bookings", bookingHandler.MyBookings)
	complete.POST("/bookings/:id/cancel", bookingHandler.Cancel)
	complete.POST("/bookings/:id/confirm", bookingHandler.Confirm)
	complete.POST("/itineraries", itineraryHandler.Generate)
	complete.GET("/itineraries", itineraryHandler.MyItineraries)

	// Admin back-office
	admin := authed.Group("/admin", handler.RequireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/beaches", catalogHandler.CreateBeach)
	admin.PUT("/beaches/:id", catalogHandler.UpdateBeach)
	admin.DELETE("/beaches/:id", catalogHandler.DeleteBeach)
	admin.POST("/trails", catalogHandler.CreateTrail)
	admin.PUT("/trails/:id", catalogHandler.UpdateTrail)
	admin.DELETE("/trails/:id", catalogHandler.DeleteTrail)
	admin.POST("/guides/:id/verify", catalogHandler.VerifyGuide)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// buildVerifier picks the assertion verifier: Google OIDC whenever a
// client ID is configured, the static dev verifier otherwise.
func buildVerifier(cfg config.Config) (identity.Verifier, error) {
	if cfg.GoogleClientID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		v, err := identity.NewGoogleVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			return nil, fmt.Errorf("init google verifier: %w", err)
		}
		return v, nil
	}
	slog.Warn("using static dev assertion verifier")
	return identity.NewStaticVerifier([]byte(cfg.DevAuthSecret)), nil
}
