package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/recommendations/internal/logger"
	"github.com/MrSnakeDoc/recommendations/internal/recommendation"
	"github.com/MrSnakeDoc/recommendations/internal/sources/seed"
)

// SeedTarget is the subset of recommendation.Controller the importer needs.
type SeedTarget interface {
	AddRecommendation(ctx context.Context, env recommendation.Envelope) (*recommendation.Response, error)
	ListRecommendations(ctx context.Context) (*recommendation.Response, error)
}

// SeedResult summarizes one import run.
type SeedResult struct {
	Imported int
	Skipped  int
}

// SeedImporter fills an empty store from a YAML seed file. Every entry
// goes through the controller, so seeds are validated like API requests.
type SeedImporter struct {
	loader *seed.Loader
	target SeedTarget
	logger logger.Logger
}

// NewSeedImporter creates a new seed importer
func NewSeedImporter(seedFile string, target SeedTarget, log logger.Logger) *SeedImporter {
	return &SeedImporter{
		loader: seed.NewLoader(seedFile),
		target: target,
		logger: log,
	}
}

// Import loads the seed file unless the store already holds recommendations.
// Invalid entries are logged and skipped; store failures abort the run.
func (si *SeedImporter) Import(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	existing, err := si.target.ListRecommendations(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to check existing recommendations: %w", err)
	}
	if len(existing.Data) > 0 {
		si.logger.Info("store not empty, skipping seed import",
			logger.Int("existing", len(existing.Data)))
		return result, nil
	}

	file, err := si.loader.Load()
	if err != nil {
		return result, fmt.Errorf("failed to load seed: %w", err)
	}

	for i, entry := range file.Recommendations {
		env := recommendation.Envelope{
			Data: map[string]any{"recommendations": []any{entry}},
		}

		if _, err := si.target.AddRecommendation(ctx, env); err != nil {
			if !recommendation.IsMalformedRequest(err) {
				return result, fmt.Errorf("failed to import seed entry %d: %w", i, err)
			}
			si.logger.Warn("skipping invalid seed entry",
				logger.Int("index", i),
				logger.Error(err))
			result.Skipped++
			continue
		}
		result.Imported++
	}

	si.logger.Info("seed import completed",
		logger.Int("imported", result.Imported),
		logger.Int("skipped", result.Skipped))
	return result, nil
}
