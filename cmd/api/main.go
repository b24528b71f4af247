package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-admin-api/internal/config"
	"github.com/noah-isme/sekolah-admin-api/internal/database"
	"github.com/noah-isme/sekolah-admin-api/internal/handler"
	"github.com/noah-isme/sekolah-admin-api/internal/middleware"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
	"github.com/noah-isme/sekolah-admin-api/internal/router"
	"github.com/noah-isme/sekolah-admin-api/internal/service"
	cloud "github.com/noah-isme/sekolah-admin-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Announcement{},
		&models.Alert{},
		&models.Exam{},
		&models.Expense{},
		&models.Student{},
		&models.Teacher{},
		&models.Bus{},
		&models.StudentAttendance{},
		&models.TeacherAttendance{},
		&models.Invoice{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, dashboard caching disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var receiptStorage service.FileStorage
	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("cloudinary unavailable, receipt uploads disabled")
	} else {
		receiptStorage = uploader
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	announcementRepo := repository.NewAnnouncementRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	examRepo := repository.NewExamRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	announcementService := service.NewAnnouncementService(announcementRepo, validate, logger)
	alertService := service.NewAlertService(alertRepo, validate, logger)
	examService := service.NewExamService(examRepo, validate, logger)
	expenseService := service.NewExpenseService(expenseRepo, receiptStorage, validate, cfg.MaxReceiptMB, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, redisClient, cfg.DashboardCacheTTL, logger)

	deps := router.Dependencies{
		AnnouncementHandler: handler.NewAnnouncementHandler(announcementService, logger),
		AlertHandler:        handler.NewAlertHandler(alertService, logger),
		ExamHandler:         handler.NewExamHandler(examService, logger),
		ExpenseHandler:      handler.NewExpenseHandler(expenseService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
