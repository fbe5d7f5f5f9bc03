package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/pulse-events/internal/auth"
	"github.com/gdg-garage/pulse-events/internal/config"
	"github.com/gdg-garage/pulse-events/internal/database"
	"github.com/gdg-garage/pulse-events/internal/handlers"
	"github.com/gdg-garage/pulse-events/internal/logging"
	"github.com/gdg-garage/pulse-events/internal/notifier"
	"github.com/gdg-garage/pulse-events/internal/registration"
	"github.com/gdg-garage/pulse-events/internal/worker"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to Database
	db := database.Connect(cfg, logger)
	directory := database.NewDirectory(db, cfg.StrictCapacity)

	// Discord bot session, used for role sync and the editors' feed
	var session *discordgo.Session
	var announcer notifier.Announcer
	if cfg.DiscordBotToken != "" {
		session, err = discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			logger.Warn("Discord session not initialized", zap.Error(err))
			session = nil
		} else if cfg.DiscordNotificationsChannelID != "" {
			announcer = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID, logger)
		}
	}

	var dispatcher notifier.Dispatcher = notifier.Nop{}
	if cfg.SMSFunctionURL != "" {
		dispatcher = notifier.NewSMSDispatcher(cfg.SMSFunctionURL, cfg.SMSAPIKey, cfg.SMSTimeout)
	} else {
		logger.Info("SMS_FUNCTION_URL not set, SMS notifications disabled")
	}

	workflow := registration.NewWorkflow(directory, dispatcher, logger)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db, session, logger)
	eventHandler := handlers.NewEventHandler(directory, authHandler, announcer, cfg.Location(), logger)
	registrationHandler := handlers.NewRegistrationHandler(directory, workflow, authHandler, logger)
	profileHandler := handlers.NewProfileHandler(db)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, authHandler, eventHandler, registrationHandler, profileHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reminders := worker.NewReminderWorker(directory, dispatcher, cfg.ReminderInterval, cfg.Location(), logger)
	go reminders.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start Server
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.Bool("strict_capacity", cfg.StrictCapacity))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	// In-flight confirmation texts finish before exit.
	workflow.Wait()
}
