package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-registry-service/config"
	deliveryHttp "patient-registry-service/internal/delivery/http"
	"patient-registry-service/internal/delivery/http/handler"
	"patient-registry-service/internal/delivery/http/middleware"
	domainRepo "patient-registry-service/internal/domain/repository"
	"patient-registry-service/internal/infrastructure/codetable"
	"patient-registry-service/internal/infrastructure/seed"
	"patient-registry-service/internal/repository"
	"patient-registry-service/internal/service"
	"patient-registry-service/internal/usecase"
	"patient-registry-service/internal/validation"
	"patient-registry-service/pkg/response"

	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config *config.Config
	Store  domainRepo.PatientStore
	Server *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Load the error-code table
	table, err := loadCodeTable(cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to load error code table: %w", err)
	}
	logrus.Infof("Error code table loaded with %d rows", len(table))

	// Initialize the store and seed it
	store := repository.NewMemoryPatientStore(matchMode(cfg.Search))
	if err := seedStore(store, cfg.Data); err != nil {
		return nil, fmt.Errorf("failed to seed patient store: %w", err)
	}
	app.Store = store
	logrus.Info("Patient store seeded successfully")

	// Initialize all layers
	app.Server = initializeServer(cfg, store, table)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func loadCodeTable(data config.DataConfig) (response.CodeTable, error) {
	if data.ErrorCodesFile != "" {
		return codetable.LoadFile(data.ErrorCodesFile)
	}
	return codetable.Default()
}

func matchMode(search config.SearchConfig) domainRepo.MatchMode {
	if search.FilterMatch == "all" {
		return domainRepo.MatchAll
	}
	return domainRepo.MatchAny
}

// seedStore runs every seed payload through the same validation and create
// path as runtime requests. Any failure, duplicates included, is a startup
// error.
func seedStore(store domainRepo.PatientStore, data config.DataConfig) error {
	forms, err := loadSeedForms(data)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for i, form := range forms {
		draft, err := validation.CreateBody(form)
		if err != nil {
			return fmt.Errorf("seed patient %d is invalid: %w", i, err)
		}
		if _, err := store.Create(ctx, draft); err != nil {
			return fmt.Errorf("seed patient %d was rejected: %w", i, err)
		}
	}
	return nil
}

func loadSeedForms(data config.DataConfig) ([]map[string]any, error) {
	if data.SeedFile != "" {
		return seed.LoadFile(data.SeedFile)
	}
	return seed.Default()
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, store domainRepo.PatientStore, table response.CodeTable) *http.Server {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize the envelope builder
	builder := response.NewBuilder(table)

	// Initialize services
	auditService := service.NewAuditService(log)

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(log, store, builder, auditService)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, builder)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server shutdown complete")
}
