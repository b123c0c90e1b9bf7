package main

import (
	"context"
	"log"

	"github.com/justsurfingit/job-description-generator/internal/client"
	"github.com/justsurfingit/job-description-generator/internal/config"
	"github.com/justsurfingit/job-description-generator/internal/database"
	"github.com/justsurfingit/job-description-generator/internal/document"
	"github.com/justsurfingit/job-description-generator/internal/handlers"
	"github.com/justsurfingit/job-description-generator/internal/services"
)

func main() {
	// 1. Load Environment Variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Description Store
	var store services.DescriptionStore
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		store = database.NewGormStore(db)
	} else {
		log.Println("⚠️  DATABASE_URL not set, keeping descriptions in memory")
		store = database.NewMemoryStore()
	}

	// 3. Initialize Core Services (Dependencies)
	// Without a Gemini key this server only fronts the generator at GENERATOR_URL.
	var jobHandler *handlers.JobHandler
	if cfg.GeminiAPIKey == "" {
		log.Printf("⚠️  GEMINI_API_KEY not set, POST /generate disabled; using generator at %s", cfg.GeneratorURL)
	} else {
		llmService, err := services.NewLLMService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal(err)
		}
		jobHandler = handlers.NewJobHandler(services.NewGenerationService(llmService))
	}
	jobService := services.NewJobService(store)

	// The form controller talks to the generator over HTTP, by default this same server.
	generator := client.New(cfg.GeneratorURL, client.WithTimeout(cfg.GeneratorTimeout))
	formService := services.NewFormService(generator, jobService)

	// 4. Initialize Handlers
	descriptionHandler := handlers.NewDescriptionHandler(formService, document.NewExporter())

	// 5. Setup Router & CORS
	r := handlers.NewRouter(jobHandler, descriptionHandler, handlers.CORSConfig(cfg))

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
