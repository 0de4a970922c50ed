package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Chunking holds the splitter and summarizer tuning knobs. The defaults
// match the production configuration; a YAML file can override them.
type Chunking struct {
	ChunkSize              int      `yaml:"chunk_size"`
	ChunkOverlap           int      `yaml:"chunk_overlap"`
	Separators             []string `yaml:"separators"`
	MaxConcurrentSummaries int      `yaml:"max_concurrent_summaries"`
}

func defaultChunking() *Chunking {
	return &Chunking{
		ChunkSize:              4000,
		ChunkOverlap:           0,
		Separators:             []string{"\n\n", "\n", ".", "!", "?", ",", " ", ""},
		MaxConcurrentSummaries: 1,
	}
}

// LoadChunking reads the chunking config from path, falling back to the
// defaults when path is empty.
func LoadChunking(path string) (*Chunking, error) {
	cfg := defaultChunking()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunking config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse chunking config: %w", err)
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk_size must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.MaxConcurrentSummaries <= 0 {
		cfg.MaxConcurrentSummaries = 1
	}
	return cfg, nil
}
