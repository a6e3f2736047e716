package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	Ai   AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables external event publishing
	KnowledgeFile      string // empty searches ./.streamlit/secrets.* and ./secrets.*
	PromptFile         string // empty uses the embedded instructions
	SessionTTL         time.Duration
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	Anthropic    string
}

type AIConfig struct {
	LLMProvider    string // "gemini", "openai", "anthropic" or "ollama"
	LLMModel       string // empty uses the provider default
	OllamaBaseURL  string
	OpenAIBaseURL  string
	RequestTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			KnowledgeFile:      getEnv("KNOWLEDGE_FILE", ""),
			PromptFile:         getEnv("PROMPT_FILE", ""),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			Anthropic:    getEnv("ANTHROPIC_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:       getEnv("LLM_MODEL", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
			RequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", 60*time.Second),
		},
	}
}

// APIKeyFor returns the key for the configured provider. The environment wins
// over the knowledge file's [genai] section.
func (c *Config) APIKeyFor(fileKey string) string {
	switch strings.ToLower(c.Ai.LLMProvider) {
	case "openai":
		return c.Keys.OpenAI
	case "anthropic":
		return c.Keys.Anthropic
	case "ollama":
		return ""
	default:
		if c.Keys.GoogleGemini != "" {
			return c.Keys.GoogleGemini
		}
		return fileKey
	}
}

// BaseURLFor returns the endpoint override for the configured provider, if any.
func (c *Config) BaseURLFor() string {
	switch strings.ToLower(c.Ai.LLMProvider) {
	case "ollama":
		return c.Ai.OllamaBaseURL
	case "openai":
		return c.Ai.OpenAIBaseURL
	}
	return ""
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or whole seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if d, err := time.ParseDuration(strValue); err == nil && d > 0 {
		return d
	}
	if secs := getEnvAsInt(key, 0); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
