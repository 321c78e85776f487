// Dataset loader for the fuse API.
// Reads a JSON dataset, generates embeddings for every document, upserts them
// into the store, and seeds a demo user without a preference profile.
//
// Usage:
//
//	fuseload -dataset dataset.json -batch-size 32
//
// Env vars:
//
//	ENV             — config environment (default: local)
//	OPENAI_API_KEY  — embedding provider key (via config expansion)
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuse-search/fuse/internal/config"
	dbRedis "github.com/fuse-search/fuse/internal/db/redis"
	"github.com/fuse-search/fuse/internal/domain"
	"github.com/fuse-search/fuse/internal/metrics"
	documentrepo "github.com/fuse-search/fuse/internal/repository/document"
	userrepo "github.com/fuse-search/fuse/internal/repository/user"
	openaiEmb "github.com/fuse-search/fuse/internal/transport/openai"
	"go.uber.org/zap"
)

type loaderConfig struct {
	datasetPath string
	batchSize   int
	userID      string
	userName    string
}

// datasetDoc mirrors one entry of the dataset JSON file.
type datasetDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

func parseFlags() loaderConfig {
	cfg := loaderConfig{}
	flag.StringVar(&cfg.datasetPath, "dataset", "dataset.json", "path to the dataset JSON file")
	flag.IntVar(&cfg.batchSize, "batch-size", 32, "documents per embedding batch")
	flag.StringVar(&cfg.userID, "user", "demo_user", "demo user ID to seed")
	flag.StringVar(&cfg.userName, "user-name", "Demo User", "demo user display name")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, loaderCfg loaderConfig) error {
	start := time.Now()

	appCfg, err := config.Load(config.GetEnv())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	metrics.RegisterEmbeddingMetrics()

	docs, err := readDataset(loaderCfg.datasetPath)
	if err != nil {
		return err
	}
	log.Printf("dataset: %d documents from %s", len(docs), loaderCfg.datasetPath)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    appCfg.Database.Addrs,
		Password: appCfg.Database.Password,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(appCfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     appCfg.Embedding.APIKey,
		BaseURL:    appCfg.Embedding.BaseURL,
		Model:      appCfg.Embedding.Model,
		Dimensions: appCfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     zap.NewNop(),
	})

	docRepo := documentrepo.New(store)

	loaded, tokens, err := loadDocuments(ctx, docRepo, embedder, docs, loaderCfg.batchSize)
	if err != nil {
		return err
	}

	if err := seedUser(ctx, userrepo.New(store), loaderCfg.userID, loaderCfg.userName); err != nil {
		return err
	}

	log.Printf("DONE in %s: %d documents, %d embedding tokens, user %q seeded",
		time.Since(start).Round(time.Millisecond), loaded, tokens, loaderCfg.userID)
	return nil
}

func readDataset(path string) ([]datasetDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var docs []datasetDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}
	return docs, nil
}

// loadDocuments embeds and upserts the dataset in batches. The embedding text
// joins title and description the same way the search index expects.
func loadDocuments(
	ctx context.Context,
	repo *documentrepo.Repo,
	embedder *openaiEmb.Embedder,
	docs []datasetDoc,
	batchSize int,
) (loaded, tokens int, err error) {
	if batchSize <= 0 {
		batchSize = 32
	}

	for offset := 0; offset < len(docs); offset += batchSize {
		end := offset + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[offset:end]

		texts := make([]string, len(batch))
		for i, d := range batch {
			texts[i] = d.Title + ". " + d.Description
		}

		result, err := embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return loaded, tokens, fmt.Errorf("embed batch at %d: %w", offset, err)
		}
		tokens += result.TotalTokens

		for i, d := range batch {
			doc, err := domain.NewDocument(d.ID, d.Title, d.Description, d.Tags, result.Embeddings[i])
			if err != nil {
				return loaded, tokens, fmt.Errorf("document %s: %w", d.ID, err)
			}

			created, err := repo.Upsert(ctx, &doc)
			if err != nil {
				return loaded, tokens, fmt.Errorf("upsert %s: %w", d.ID, err)
			}
			verb := "updated"
			if created {
				verb = "created"
			}
			log.Printf("  %s %s - %s", verb, d.ID, d.Title)
			loaded++
		}
	}

	return loaded, tokens, nil
}

// seedUser creates the demo user with an empty preference profile. An
// existing user keeps their current profile.
func seedUser(ctx context.Context, repo *userrepo.Repo, id, name string) error {
	if existing, err := repo.Get(ctx, id); err == nil && existing.HasProfile() {
		log.Printf("user %q already has a profile, leaving untouched", id)
		return nil
	}

	u, err := domain.NewUser(id, name)
	if err != nil {
		return fmt.Errorf("build user: %w", err)
	}
	if err := repo.Upsert(ctx, &u); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	return nil
}
