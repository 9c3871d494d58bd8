package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":3000"`

	// External model configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"OPENAI_"`

	// CORS configuration
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Intake questions (loaded from JSON file, with compiled-in defaults)
	IntakeQuestions []IntakeQuestion

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig configures the chat-completion connector.
type LLMConnectorConfig struct {
	HTTPClientConfig
	Model               string `env:"MODEL" envDefault:"gpt-4"`
	CompletionsEndpoint string `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com"`
}

// IntakeQuestion represents one entry of intake_questions.json.
type IntakeQuestion struct {
	Field  string `json:"field"`
	Prompt string `json:"prompt"`
}

// intakeQuestions represents the structure of intake_questions.json
type intakeQuestions struct {
	Questions []IntakeQuestion `json:"questions"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Load intake questions from JSON file
	if err := loadIntakeQuestions(cfg); err != nil {
		return nil, fmt.Errorf("load intake questions: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.ServerAddr == "" {
		return fmt.Errorf("SERVER_ADDR must not be empty")
	}

	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Token == "" {
		return fmt.Errorf("OPENAI_TOKEN must be set unless ENABLE_MOCKS=true")
	}

	if cfg.LLMConnectorCfg.RequestTimeout <= 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must be positive, got %s", cfg.LLMConnectorCfg.RequestTimeout)
	}

	return nil
}

var defaultIntakeQuestions = []IntakeQuestion{
	{
		Field:  "current_role",
		Prompt: "What’s your current role, and what are your strengths? (For example, 'I’m a tech expert who has developed a healthcare app.')",
	},
	{
		Field:  "collaboration_needs",
		Prompt: "What kind of collaboration are you looking for? (For example, are you looking for a technical partner, an investor, or a sales partner?)",
	},
	{
		Field:  "domain",
		Prompt: "What is your business domain? (What industry or field does your business belong to? For example, 'I’m in the healthcare domain, developing a fitness tracking app.')",
	},
	{
		Field:  "region",
		Prompt: "What is your preferred region for collaboration? (Which geographical area would you prefer to collaborate in or with? For example, 'I’m looking to collaborate with partners in North America or Europe.')",
	},
}

func loadIntakeQuestions(cfg *Config) error {
	configPath := filepath.Join("internal", "config", "intake_questions.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Warning: intake questions file not found at %s, using default questions\n", configPath)
		cfg.IntakeQuestions = defaultIntakeQuestions
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read intake questions file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("intake questions file is empty: %s", configPath)
	}

	var questionsData intakeQuestions
	if err := json.Unmarshal(data, &questionsData); err != nil {
		return fmt.Errorf("parse intake questions JSON: %w", err)
	}

	if len(questionsData.Questions) == 0 {
		return fmt.Errorf("intake questions file contains no questions: %s", configPath)
	}

	cfg.IntakeQuestions = questionsData.Questions

	fmt.Printf("Loaded %d intake questions from %s\n", len(cfg.IntakeQuestions), configPath)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
