package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port      string
	UploadDir string

	AssemblyAIKey     string
	AssemblyAIBaseURL string
	STTLanguage       string
	STTSpeechModel    string

	LLMProvider       string
	GeminiAPIKey      string
	GeminiAPIURL      string
	GeminiModel       string
	GeminiCredentials string
	OpenAIKey         string
	OpenAIModel       string

	DatabaseURL string
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		AssemblyAIKey:     os.Getenv("ASSEMBLYAI_API_KEY"),
		AssemblyAIBaseURL: getEnv("ASSEMBLYAI_BASE_URL", "https://api.assemblyai.com"),
		STTLanguage:       getEnv("STT_LANGUAGE", "pt"),
		STTSpeechModel:    getEnv("STT_SPEECH_MODEL", "universal"),

		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiAPIURL:      getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiCredentials: os.Getenv("GEMINI_CREDENTIALS_FILE"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		DatabaseURL: databaseURL(),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "30s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be a positive duration such as 30s, got %q", os.Getenv("HTTP_TIMEOUT"))
	}
	cfg.HTTPTimeout = timeout

	if cfg.AssemblyAIKey == "" {
		return nil, fmt.Errorf("ASSEMBLYAI_API_KEY is required. Please set it as environment variable or in .env")
	}

	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" && cfg.GeminiCredentials == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_CREDENTIALS_FILE is required when LLM_PROVIDER=gemini")
		}
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q. Supported: gemini, openai", cfg.LLMProvider)
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and otherwise builds one from the DB_* variables
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	host := os.Getenv("DB_HOST")
	name := os.Getenv("DB_NAME")
	if host == "" || name == "" {
		return ""
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     host + ":" + getEnv("DB_PORT", "5432"),
		Path:     "/" + name,
		RawQuery: "sslmode=" + getEnv("DB_SSLMODE", "disable"),
	}
	if user := os.Getenv("DB_USER"); user != "" {
		if pw, ok := os.LookupEnv("DB_PASSWORD"); ok {
			u.User = url.UserPassword(user, pw)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
