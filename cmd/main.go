package main

import (
	"context"
	"log"

	"pictora/api"
	"pictora/config"
	"pictora/pipeline"
	"pictora/pkg/boltstore"
	"pictora/pkg/genai"
	qdrantClient "pictora/pkg/qdrantdb"
	"pictora/search"
	"pictora/synthesis"

	"go.uber.org/zap"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	tunables, err := config.LoadTunables(cfg.TunablesPath)
	if err != nil {
		log.Fatalf("Failed to load tunables: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Qdrant vector
	// =========
	qdb, err := qdrantClient.NewClient(cfg.QdrantHost, cfg.QdrantPort)
	if err != nil {
		log.Fatalf("Failed to initialize Qdrant: %v", err)
	}
	err = qdb.EnsureCollection(context.Background())
	if err != nil {
		log.Fatalf("err: %v", err)
	}

	// =========
	// Gemini client
	// =========
	geminiClient, err := genai.NewGemini(context.Background(), cfg.GeminiAPIKey,
		tunables.TextModel, tunables.EmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	// =========
	// Project metadata store
	// =========
	projectStore := &boltstore.ProjectStore{DBPath: cfg.BoltDBPath}
	if err := projectStore.Init(); err != nil {
		log.Fatalf("Failed to initialize project store: %v", err)
	}
	defer projectStore.Close()

	// =========
	// Services
	// =========
	synthesizer := synthesis.NewSynthesizer(geminiClient, logger)
	reranker := search.NewReranker(geminiClient, logger)
	orchestrator := search.NewOrchestrator(synthesizer, qdb, reranker,
		tunables.TopK, tunables.MaxResults, logger)
	savePipeline := pipeline.NewPipeline(synthesizer, qdb, projectStore, logger)

	// =========
	// HTTP
	// =========
	server := api.NewServer(orchestrator, savePipeline, qdb, logger, cfg.AppPort)
	logger.Info("starting server", zap.Int("port", cfg.AppPort))
	log.Fatal(server.Start())
}
