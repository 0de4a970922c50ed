package main

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medsum/api"
	"medsum/config"
	"medsum/extract"
	"medsum/file"
	"medsum/pipeline"
	"medsum/pkg/chunking"
	"medsum/summarize"
)

func main() {
	ctx := context.Background()

	// =========
	// Config
	// =========
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	chunkCfg, err := config.LoadChunking(cfg.ChunkingConfPath)
	if err != nil {
		log.Fatalf("Failed to load chunking config: %v", err)
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
	// AWS clients
	// =========
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRetryMode(aws.RetryModeStandard),
		awsconfig.WithRetryMaxAttempts(10),
	)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	textractClient := textract.NewFromConfig(awsCfg)
	bedrockClient := bedrockruntime.NewFromConfig(awsCfg)

	// =========
	// Document intake
	// =========
	store := file.NewStore(cfg.UploadDir, logger)

	// =========
	// Extraction
	// =========
	extractor := extract.NewTextractExtractor(textractClient, logger)

	// =========
	// Chunking
	// =========
	chunker := chunking.NewRecursiveCharacter(
		chunking.WithChunkSize(chunkCfg.ChunkSize),
		chunking.WithChunkOverlap(chunkCfg.ChunkOverlap),
		chunking.WithSeparators(chunkCfg.Separators),
	)

	// =========
	// Summarization
	// =========
	summarizer := summarize.NewBedrockSummarizer(bedrockClient, cfg.BedrockModel, logger,
		summarize.WithConcurrency(chunkCfg.MaxConcurrentSummaries))

	// =========
	// Pipeline + API server
	// =========
	p := pipeline.NewPipeline(store, extractor, chunker, summarizer, logger)
	server := api.NewServer(p, cfg.AppPort, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
