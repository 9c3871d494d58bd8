package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/chhatrapati/linkup/internal/api"
	intakeapi "github.com/chhatrapati/linkup/internal/api/intake"
	"github.com/chhatrapati/linkup/internal/catalog"
	"github.com/chhatrapati/linkup/internal/config"
	"github.com/chhatrapati/linkup/internal/integration/llm"
	"github.com/chhatrapati/linkup/internal/pkg/formatter"
	"github.com/chhatrapati/linkup/internal/pkg/validator"
	"github.com/chhatrapati/linkup/internal/repository"
	"github.com/chhatrapati/linkup/internal/usecase/intake"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Build the question catalog
	questions := make([]catalog.Question, 0, len(cfg.IntakeQuestions))
	for _, q := range cfg.IntakeQuestions {
		questions = append(questions, catalog.Question{Field: q.Field, Prompt: q.Prompt})
	}
	questionsCat, err := catalog.New(questions)
	if err != nil {
		return nil, fmt.Errorf("build question catalog: %w", err)
	}
	logger.Info("Question catalog loaded", zap.Int("questions", questionsCat.Len()))

	// Initialize repositories
	sessionRepo := repository.NewSessionCache()
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var llmConnector intake.LLMConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the external model")
		llmConnector = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for the external model")
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, questionsCat.Fields(), logger)
	}

	// Initialize validators
	reqValidator := validator.NewValidator()
	logger.Info("Validators initialized")

	// Initialize use cases
	intakeUC := intake.NewUsecase(
		sessionRepo,
		questionsCat,
		llmConnector,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	intakeHandler := intakeapi.NewHandler(intakeUC, reqValidator, formatter.NewFactory())
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(intakeHandler, cfg.CORSAllowedOrigins, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}
