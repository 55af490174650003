package main

import (
	"context"
	"log"

	"justlaw-backend/config"
	"justlaw-backend/handlers"
	"justlaw-backend/repository"
	"justlaw-backend/scraper"
	"justlaw-backend/service"
	"justlaw-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg := config.Load()
	ctx := context.Background()

	// Postgres is optional: without it searches and uploads are not recorded
	var db *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err := initPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to initialize Postgres:", err)
		}
		defer pool.Close()
		db = pool
	} else {
		log.Println("Warning: DATABASE_URL not set, search logs and uploads will not be recorded")
	}

	fileStorage, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Printf("Storage initialized (%s)", cfg.Storage.Type)

	var generator service.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := initGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatal("Failed to initialize Gemini:", err)
		}
		defer client.Close()
		generator = service.NewGeminiGenerator(client, cfg.GeminiModel, cfg.GeminiTemperature)
	} else {
		log.Println("Warning: GEMINI_API_KEY not set, AI features are disabled")
	}

	searchOpts := []service.SearchServiceOption{
		service.SearchWithScraperOptions(scraper.Options{
			UserAgent:   cfg.ScraperUserAgent,
			HTTPTimeout: cfg.ScraperHTTPTimeout,
		}),
		service.SearchWithBranchTimeout(cfg.BranchTimeout),
		service.SearchWithFallbackTimeout(cfg.FallbackTimeout),
	}
	petitionOpts := []service.PetitionServiceOption{service.PetitionWithGenerator(generator)}
	contractOpts := []service.ContractServiceOption{
		service.ContractWithGenerator(generator),
		service.ContractWithStorage(fileStorage),
	}
	var contractFiles handlers.ContractFileLookup

	if generator != nil {
		searchOpts = append(searchOpts, service.SearchWithGenerator(generator))
	}
	if db != nil {
		searchOpts = append(searchOpts, service.SearchWithLogStore(repository.NewSearchLogRepository(db)))
		petitionOpts = append(petitionOpts, service.PetitionWithRepository(repository.NewPetitionRepository(db)))

		fileRepo := repository.NewContractFileRepository(db)
		contractOpts = append(contractOpts, service.ContractWithFileRepository(fileRepo))
		contractFiles = fileRepo
	}

	searchService := service.NewSearchService(searchOpts...)
	statuteService := service.NewStatuteService(service.StatuteWithGenerator(generator))
	chatService := service.NewChatService(service.ChatWithGenerator(generator))
	petitionService := service.NewPetitionService(petitionOpts...)
	contractService := service.NewContractService(contractOpts...)

	router := &handlers.Router{
		Search:           handlers.NewSearchHandler(searchService, statuteService),
		Assistant:        handlers.NewAssistantHandler(chatService, petitionService),
		Contract:         handlers.NewContractHandler(contractService, contractFiles, fileStorage),
		GeminiConfigured: generator != nil,
	}

	r := gin.Default()
	router.Register(r)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("Postgres connection established")
	return pool, nil
}

func initGemini(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}
