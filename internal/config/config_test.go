package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 3001},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("model default: %s", cfg.Embedding.Model)
	}
	if cfg.Ranking.KeywordWeight != 0.3 || cfg.Ranking.VectorWeight != 0.7 {
		t.Errorf("weight defaults: %v / %v", cfg.Ranking.KeywordWeight, cfg.Ranking.VectorWeight)
	}
	if cfg.Ranking.SearchLimit != 10 || cfg.Ranking.RecommendLimit != 5 {
		t.Errorf("limit defaults: %d / %d", cfg.Ranking.SearchLimit, cfg.Ranking.RecommendLimit)
	}
	if cfg.Ranking.ProfileWindow != 20 {
		t.Errorf("profile window default: %d", cfg.Ranking.ProfileWindow)
	}
	if cfg.Ranking.HistoryLimit != 50 {
		t.Errorf("history limit default: %d", cfg.Ranking.HistoryLimit)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("http timeout defaults: %d / %d", cfg.HTTP.ReadTimeoutSec, cfg.HTTP.ShutdownSec)
	}
}

func TestApplyDefaults_KeepsExplicitWeights(t *testing.T) {
	cfg := validConfig()
	cfg.Ranking.KeywordWeight = 0.5
	cfg.Ranking.VectorWeight = 0.5
	cfg.ApplyDefaults()

	if cfg.Ranking.KeywordWeight != 0.5 || cfg.Ranking.VectorWeight != 0.5 {
		t.Errorf("explicit weights overridden: %v / %v",
			cfg.Ranking.KeywordWeight, cfg.Ranking.VectorWeight)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"no addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"negative keyword weight", func(c *Config) { c.Ranking.KeywordWeight = -1 }, "keyword_weight"},
		{"negative vector weight", func(c *Config) { c.Ranking.VectorWeight = -0.1 }, "vector_weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FUSE_TEST_ADDR", "redis:7000")

	in := []byte("addr: ${FUSE_TEST_ADDR}\nkey: ${FUSE_TEST_MISSING:-fallback}\nempty: ${FUSE_TEST_MISSING}")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "addr: redis:7000") {
		t.Errorf("env var not expanded: %s", out)
	}
	if !strings.Contains(out, "key: fallback") {
		t.Errorf("default not applied: %s", out)
	}
	if !strings.Contains(out, "empty: \n") && !strings.HasSuffix(out, "empty: ") {
		t.Errorf("missing var without default must expand to empty: %q", out)
	}
}
