package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppPort          int
	BedrockModel     string
	UploadDir        string
	ChunkingConfPath string
}

func Load() (*Config, error) {
	appPort, err := strconv.Atoi(getEnv("APP_PORT"))
	if err != nil {
		return nil, err
	}

	return &Config{
		AppPort:          appPort,
		BedrockModel:     getEnv("BEDROCK_MODEL"),
		UploadDir:        getEnvDefault("UPLOAD_DIR", "./uploaded_files"),
		ChunkingConfPath: os.Getenv("CHUNKING_CONFIG_PATH"),
	}, nil
}

func getEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

func getEnvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
