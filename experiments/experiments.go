package experiments

import (
	"context"
	"fmt"
	"time"

	"frontiers/config"
	"frontiers/engine"
	"frontiers/experiments/metrics"
	"frontiers/game"
	"frontiers/meta"
	"frontiers/searcher"
	"frontiers/searcher/agent"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 10 // Per match up
	TimeBudget = 50 * time.Millisecond
)

// Settings are shared by every game of an experiment.
type Settings struct {
	Games      int // Per match up
	OutputDir  string
	MaxTurns   int
	NodeBudget int           // Overrides the agents' budget when positive
	Duration   time.Duration // Overrides the agents' thinking time when positive
	Seed       uint64
	Store      engine.Store // Optional
}

func (s Settings) withDefaults() Settings {
	if s.Games <= 0 {
		s.Games = NumGames
	}
	if s.OutputDir == "" {
		s.OutputDir = "./results"
	}
	if s.MaxTurns <= 0 {
		s.MaxTurns = meta.MAX_TURNS
	}
	return s
}

// RunPersonalityExperiment pairs every AI personality against the Spacer baseline and returns the
// directory the results were written to.
func RunPersonalityExperiment(ctx context.Context, settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Personality: game.Spacer.String(), Goroutines: meta.GO_ROUTINES, Duration: TimeBudget, NodeBudget: meta.NODE_BUDGET}
	configs := []metrics.AgentConfig{baseline}
	for i, t := range []game.PlayerType{game.Cadet, game.Pirate, game.Admiral} {
		configs = append(configs, metrics.AgentConfig{
			ID:          i + 1,
			Personality: t.String(),
			Goroutines:  baseline.Goroutines,
			Duration:    baseline.Duration,
			NodeBudget:  baseline.NodeBudget,
		})
	}

	// Each matchup pairs the baseline against a personality, once from each seat
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config}, []metrics.AgentConfig{config, baseline})
	}

	return runExperiment(ctx, "personalities", settings.withDefaults(), configs, matchUps)
}

func runExperiment(ctx context.Context, name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	if settings.NodeBudget > 0 || settings.Duration > 0 {
		for i := range configs {
			configs[i] = settings.override(configs[i])
		}
		for _, matchUp := range matchUps {
			for i := range matchUp {
				matchUp[i] = settings.override(matchUp[i])
			}
		}
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %+v...", mi+1, len(matchUps), matchUp)

		for i := 0; i < settings.Games; i++ {
			count++
			winners, gameMetric, moveMetrics, err := runGame(ctx, settings, matchUp, settings.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			ids := make([]int, len(matchUp))
			for seat, config := range matchUp {
				ids[seat] = config.ID
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agents:     ids,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winners: %v", mi+1, len(matchUps), i+1, winners)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata and results
	writer, err := metrics.NewWriter(settings.OutputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment results")

	return writer.Dir(), nil
}

func (s Settings) override(config metrics.AgentConfig) metrics.AgentConfig {
	if s.NodeBudget > 0 {
		config.NodeBudget = s.NodeBudget
	}
	if s.Duration > 0 {
		config.Duration = s.Duration
	}
	return config
}

// runGame plays a single game between the agents of a matchup, one per seat
func runGame(ctx context.Context, settings Settings, matchUp []metrics.AgentConfig, seed uint64) ([]int, metrics.GameMetric, []metrics.MoveMetric, error) {
	types := make([]game.PlayerType, len(matchUp))
	agents := make([]agent.Agent, len(matchUp))
	for seat, config := range matchUp {
		t, err := game.ParsePlayerType(config.Personality)
		if err != nil {
			return nil, metrics.GameMetric{}, nil, err
		}
		types[seat] = t
		agents[seat] = agent.NewSearchAgent(createBFS(config, seed+uint64(seat)))
	}

	state, err := game.NewGameState(len(matchUp), types, seed)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}

	options := []engine.Option{engine.WithMaxTurns(settings.MaxTurns)}
	if settings.Store != nil {
		options = append(options, engine.WithStore(settings.Store))
	}
	return engine.NewLocalEngine(state, agents, options...).Run(ctx)
}

func createBFS(c metrics.AgentConfig, seed uint64) *searcher.BFS {
	options := []searcher.Option{}

	switch {
	case c.Duration > 0:
		// Zero budget leaves a timed search unbounded
		options = append(options, searcher.WithDuration(c.Duration), searcher.WithNodeBudget(c.NodeBudget))
	case c.NodeBudget > 0:
		options = append(options, searcher.WithNodeBudget(c.NodeBudget))
	}
	if t, err := game.ParsePlayerType(c.Personality); err == nil {
		options = append(options, searcher.WithEvaluationFn(game.NewEvaluator(config.Personality(t), seed)))
	}

	options = append(options, searcher.WithMetrics(), searcher.WithSeed(seed))
	return searcher.NewBFS(c.Goroutines, options...)
}
