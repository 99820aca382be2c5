package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/verity/internal/aggregate"
	"github.com/ppiankov/verity/internal/cache"
	"github.com/ppiankov/verity/internal/corpus"
	"github.com/ppiankov/verity/internal/embedding"
	"github.com/ppiankov/verity/internal/engine"
	"github.com/ppiankov/verity/internal/match"
	"github.com/ppiankov/verity/internal/model"
	"github.com/ppiankov/verity/internal/sources"
)

// loadConfig builds the effective configuration: defaults, overlaid by
// the config file, overlaid by environment variables for credentials.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Credentials come from the environment unless the file set them
	overlayEnv(&cfg.Sources.GoogleFactCheckAPIKey, "GOOGLE_FACTCHECK_API_KEY")
	overlayEnv(&cfg.Sources.ClaimBusterAPIKey, "CLAIMBUSTER_API_KEY")
	overlayEnv(&cfg.Sources.FactiverseAPIKey, "FACTIVERSE_API_KEY")
	overlayEnv(&cfg.Embedding.APIKey, "OPENAI_API_KEY")
	overlayEnv(&cfg.Sources.HTTPProxy, "HTTP_PROXY")
	overlayEnv(&cfg.Sources.HTTPSProxy, "HTTPS_PROXY")

	cfg.Output.Verbose = verbose
	cfg.Output.JSON = jsonOut

	return cfg, nil
}

func overlayEnv(dst *string, key string) {
	if *dst == "" {
		*dst = os.Getenv(key)
	}
}

// buildEngine wires the full verification stack from configuration.
// Embedding failures degrade to lexical matching rather than aborting.
func buildEngine(ctx context.Context, cfg *model.Config) (*engine.Engine, error) {
	corp, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	embedder, err := embedding.NewEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	if embedder != nil {
		if err := corp.ComputeEmbeddings(ctx, embedder); err != nil {
			slog.Warn("embedding precompute failed, falling back to lexical matching", "error", err)
			embedder = nil
		}
	}
	semantic := match.NewSemanticMatcher(embedder, cfg.Match.SemanticThreshold)

	aggregator := aggregate.New(sources.All(cfg.Sources), cfg.Sources.Timeout)

	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		var backend cache.Cache
		if cfg.Cache.Dir != "" {
			backend = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			backend = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL/2)
		}
		resultCache = cache.NewResultCache(backend, cfg.Cache.TTL)
	}

	return engine.New(cfg, corp, semantic, aggregator, resultCache), nil
}
