package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tunables are the search constants that are configuration, not code:
// shortlist size for the vector fetch, cap on the final result list, and
// the provider model names.
type Tunables struct {
	TopK           uint64 `yaml:"top_k"`
	MaxResults     int    `yaml:"max_results"`
	TextModel      string `yaml:"text_model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

func DefaultTunables() *Tunables {
	return &Tunables{
		TopK:       20,
		MaxResults: 5,
	}
}

// LoadTunables reads the tunables file, falling back to defaults when no
// path is configured. Fields left zero in the file keep their defaults.
func LoadTunables(path string) (*Tunables, error) {
	t := DefaultTunables()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tunables file: %w", err)
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("failed to parse tunables file: %w", err)
	}

	if t.TopK == 0 {
		t.TopK = 20
	}
	if t.MaxResults <= 0 {
		t.MaxResults = 5
	}
	return t, nil
}
