package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/config"
	"github.com/zaylabs/dryclean-api/internal/infrastructure/database"
	"github.com/zaylabs/dryclean-api/internal/infrastructure/repository"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/handler"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/routes"
	"github.com/zaylabs/dryclean-api/pkg/printer"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Every cutoff is evaluated on the shop's wall clock
	clock := cfg.Shop.Clock()
	log.Printf("Shop timezone: %s", cfg.Shop.Location())

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	itemRepo := repository.NewItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	configRepo := repository.NewConfigurationRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	receiptRepo := repository.NewReceiptSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	transactor := repository.NewTransactor(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo, branchRepo)
	branchService := service.NewBranchService(branchRepo)
	itemService := service.NewItemService(itemRepo, clock)
	customerService := service.NewCustomerService(customerRepo)
	configService := service.NewConfigurationService(configRepo)
	problemService := service.NewProblemService(problemRepo)
	settingService := service.NewSettingService(settingRepo, cfg.Shop.Name)
	locationService := service.NewLocationService(locationRepo)
	bookingService := service.NewBookingService(bookingRepo, itemRepo, customerRepo, configRepo, problemRepo, receiptRepo, transactor, clock)
	reportService := service.NewReportService(bookingRepo, clock)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Timeout: cfg.Printer.Timeout,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, bookingService, branchRepo, configRepo, cfg.Shop.Name, cfg.Shop.PaperWidth)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Booking:       handler.NewBookingHandler(bookingService, printerService),
		Item:          handler.NewItemHandler(itemService),
		Branch:        handler.NewBranchHandler(branchService),
		Customer:      handler.NewCustomerHandler(customerService),
		Configuration: handler.NewConfigurationHandler(configService),
		Problem:       handler.NewProblemHandler(problemService),
		Setting:       handler.NewSettingHandler(settingService),
		Location:      handler.NewLocationHandler(locationService),
		Report:        handler.NewReportHandler(reportService),
		User:          handler.NewUserHandler(userService),
		Printer:       handler.NewPrinterHandler(printerService),
	}

	stop := make(chan struct{})
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Clock:           clock,
		Stop:            stop,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Shutdown signal received (%s), draining in-flight requests", sig)

	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
}
