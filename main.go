package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Ananth-NQI/portfolio-backend/database"
	"github.com/Ananth-NQI/portfolio-backend/internal/config"
	"github.com/Ananth-NQI/portfolio-backend/internal/jobs"
	"github.com/Ananth-NQI/portfolio-backend/internal/logger"
	"github.com/Ananth-NQI/portfolio-backend/internal/routes"
	"github.com/Ananth-NQI/portfolio-backend/internal/services"
	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		JSON:       cfg.IsProduction(),
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	log.Info("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}
	store := storage.NewDatabaseStore(db)

	// Outbound channels are optional
	var mailer services.Mailer
	if cfg.MailerConfigured() {
		mailer = services.NewSMTPMailer(services.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		log.Warn("SMTP not configured - e-mail notifications and auto-replies disabled")
	}

	var whatsapp services.WhatsAppSender
	if cfg.TwilioConfigured() {
		twilioService, err := services.NewTwilioService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Twilio service")
		}
		whatsapp = twilioService
	} else {
		log.Warn("Twilio credentials not found - WhatsApp notifications disabled")
	}

	notifyEmail := cfg.NotifyEmail
	if notifyEmail == "" {
		notifyEmail = cfg.AdminEmail
	}
	dispatcher := services.NewDispatcher(store, mailer, whatsapp, services.DispatcherConfig{
		AdminEmail:    notifyEmail,
		AdminWhatsApp: cfg.NotifyWhatsAppTo,
	}, log)

	// Initialize all services
	sessions := services.NewSessionManager(store, cfg.SessionTTL, log)
	authService := services.NewAuthService(store, sessions, dispatcher, services.AuthConfig{
		ResetTTL:    cfg.ResetTokenTTL,
		FrontendURL: cfg.FrontendURL,
	}, log)
	messaging := services.NewMessagingService(store, dispatcher, log, cfg.AdminReplyEmail)
	content := services.NewContentService(store, log)
	portfolio := services.NewPortfolioService(store, log)
	uploads := services.NewUploadService(cfg.UploadDir, cfg.MaxUploadBytes, log)

	if _, err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.WithError(err).Fatal("Failed to provision admin account")
	}

	retention := jobs.NewRetentionJob(messaging, sessions, cfg.RetentionSweepInterval, log)
	retention.Start()

	app := routes.NewApp(routes.AppConfig{
		AppName: "Portfolio Backend v" + version,
		// Multipart framing on top of the largest upload
		BodyLimit:   int(cfg.MaxUploadBytes) + 2*1024*1024,
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   true,
	}, log)

	routes.SetupRoutes(app, routes.Dependencies{
		Content:         content,
		Portfolio:       portfolio,
		Messaging:       messaging,
		Auth:            authService,
		Uploads:         uploads,
		DB:              store,
		Log:             log,
		Version:         version,
		StorageName:     cfg.StorageDescription(),
		SecureCookie:    cfg.IsProduction(),
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Warn("Server shutdown error")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"storage":     cfg.StorageDescription(),
		"environment": cfg.Environment,
		"email":       mailer != nil,
		"whatsapp":    whatsapp != nil,
	}).Info("Portfolio Backend starting")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("Server stopped")
	}

	log.Info("Stopping retention job...")
	retention.Stop()
	log.Info("Waiting for pending notifications...")
	messaging.Wait()
	if err := database.Close(db); err != nil {
		log.WithError(err).Warn("Failed to close database")
	}
	log.Info("Shutdown complete")
}
