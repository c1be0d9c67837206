package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sampogi19/SafeSpace/external/abstractapi"
	"github.com/sampogi19/SafeSpace/external/resend"

	"github.com/sampogi19/SafeSpace/internal/config"
	"github.com/sampogi19/SafeSpace/internal/db"
	"github.com/sampogi19/SafeSpace/internal/repository"
	"github.com/sampogi19/SafeSpace/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.UseEmailReputation {
		emailValidator, err = abstractapi.NewAbstractReputationValidator(cfg.AbstractEmailAPIKey)
		if err != nil {
			slog.Error("init email validator", "error", err)
			os.Exit(1)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	mailer, err := resend.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	if err != nil {
		slog.Error("init mailer", "error", err)
		os.Exit(1)
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	// ======================
	// SERVICES
	// ======================
	otpSvc := services.NewOTPService(userRepo, otpRepo, mailer, cfg.RegistrationOTPTTL, cfg.RecoveryOTPTTL)
	authSvc := services.NewAuthService(userRepo, emailValidator, otpSvc)
	feedSvc := services.NewFeedService(postRepo, commentRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("")

	registerAuthRoutes(api, authSvc, cfg.JWTValidity)
	registerPasswordResetRoutes(api, authSvc)
	registerPostRoutes(api, feedSvc)
	registerCommentRoutes(api, feedSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
