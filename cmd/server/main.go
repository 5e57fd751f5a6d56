package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"falaclara/internal/ai"
	"falaclara/internal/api"
	"falaclara/internal/config"
	"falaclara/internal/db"
	"falaclara/internal/diagnosis"
	"falaclara/internal/logger"
	"falaclara/internal/repository"
	"falaclara/internal/stt"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("Failed to create upload directory")
	}

	var users repository.UserRepository
	if cfg.DatabaseURL != "" {
		log.Info().Msg("Initializing database connection...")
		if err := db.Init(cfg.DatabaseURL); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize database. Continuing with in-memory bios.")
		} else {
			defer db.Close()
			users = repository.NewPostgresRepository(db.DB)
			log.Info().Msg("Database and repository initialized successfully")
		}
	} else {
		log.Info().Msg("DATABASE_URL not set, running without database (in-memory storage only)")
	}
	if users == nil {
		users = repository.NewMemoryRepository()
	}

	transcriber, err := stt.CreateClient(stt.ProviderConfig{
		Provider:    "assemblyai",
		APIKey:      cfg.AssemblyAIKey,
		BaseURL:     cfg.AssemblyAIBaseURL,
		CallTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create transcription client")
	}

	llm, err := ai.CreateProvider(ai.ProviderConfig{
		Provider:          cfg.LLMProvider,
		GeminiAPIKey:      cfg.GeminiAPIKey,
		GeminiURL:         cfg.GeminiAPIURL,
		GeminiModel:       cfg.GeminiModel,
		GeminiCredentials: cfg.GeminiCredentials,
		OpenAIKey:         cfg.OpenAIKey,
		OpenAIModel:       cfg.OpenAIModel,
		CallTimeout:       cfg.HTTPTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create language model provider")
	}

	pipeline := diagnosis.NewPipeline(transcriber, ai.NewDiagnoser(llm), users,
		diagnosis.WithLanguage(cfg.STTLanguage),
		diagnosis.WithSpeechModel(cfg.STTSpeechModel),
	)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Add CORS middleware for web and mobile clients
	r.Use(api.CORSMiddleware())

	// Register routes
	api.RegisterRoutes(r, api.NewHandlers(pipeline, llm, cfg.UploadDir))

	log.Info().Str("port", cfg.Port).Str("llm", llm.Name()).Msg("FalaClara backend running")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
