package config

import (
	"testing"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		shouldSet    bool
		want         string
	}{
		{
			name:         "returns environment variable when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			shouldSet:    true,
			want:         "custom",
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_VAR_MISSING",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    false,
			want:         "default",
		},
		{
			name:         "returns default when environment variable is empty string",
			key:          "TEST_VAR_EMPTY",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    true,
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Run("parses valid float", func(t *testing.T) {
		t.Setenv("TEST_FLOAT_VAR", "0.75")

		if got := getEnvAsFloat("TEST_FLOAT_VAR", 0.9); got != 0.75 {
			t.Errorf("getEnvAsFloat() = %v, want 0.75", got)
		}
	})

	t.Run("returns default on invalid float", func(t *testing.T) {
		t.Setenv("TEST_FLOAT_VAR", "not-a-float")

		if got := getEnvAsFloat("TEST_FLOAT_VAR", 0.9); got != 0.9 {
			t.Errorf("getEnvAsFloat() = %v, want 0.9", got)
		}
	})

	t.Run("returns default when unset", func(t *testing.T) {
		if got := getEnvAsFloat("TEST_FLOAT_MISSING", 1.5); got != 1.5 {
			t.Errorf("getEnvAsFloat() = %v, want 1.5", got)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("fails without OPENAI_API_KEY", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail when OPENAI_API_KEY is not set")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("RAG_TOP_K", "")
		t.Setenv("SIMILARITY_THRESHOLD", "")
		t.Setenv("MAX_REGENERATION", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.RAGTopK != 5 {
			t.Errorf("RAGTopK = %d, want 5", cfg.RAGTopK)
		}
		if cfg.SimilarityThreshold != 0.9 {
			t.Errorf("SimilarityThreshold = %v, want 0.9", cfg.SimilarityThreshold)
		}
		if cfg.MaxRegeneration != 3 {
			t.Errorf("MaxRegeneration = %d, want 3", cfg.MaxRegeneration)
		}
		if cfg.EmbeddingModel != "text-embedding-3-small" {
			t.Errorf("EmbeddingModel = %q", cfg.EmbeddingModel)
		}
	})

	t.Run("rejects out-of-range similarity threshold", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("SIMILARITY_THRESHOLD", "1.5")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should reject SIMILARITY_THRESHOLD > 1")
		}
	})

	t.Run("rejects non-positive RAG_TOP_K", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("RAG_TOP_K", "0")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should reject RAG_TOP_K = 0")
		}
	})
}
