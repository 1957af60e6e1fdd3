package experiments

import (
	"context"

	"frontiers/experiments/metrics"
	"frontiers/game"
)

// RunThroughputExperiment measures how many positions a search expands within the same thinking
// time as the worker pool grows. Searches run without a node budget unless settings set one.
func RunThroughputExperiment(ctx context.Context, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16} {
		configs = append(configs, metrics.AgentConfig{
			ID:          i + 1,
			Personality: game.Spacer.String(),
			Goroutines:  goroutines,
			Duration:    TimeBudget,
		})
	}

	// Same config for both players in each game
	// for the same playing strength and similar game length
	matchUps := [][]metrics.AgentConfig{}
	for _, c := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{c, c})
	}

	return runExperiment(ctx, "throughput", settings.withDefaults(), configs, matchUps)
}
