package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontiers/config"
	"frontiers/engine"
	"frontiers/experiments"
	"frontiers/game"
	"frontiers/searcher"
	"frontiers/searcher/agent"
	"frontiers/store"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// settings are process-level knobs; everything else lives in the config file.
type settings struct {
	ConfigDir string   `env:"FRONTIERS_CONFIG_DIR" envDefault:"."`
	Mode      string   `env:"FRONTIERS_MODE" envDefault:"match"` // match, personalities or throughput
	Seed      uint64   `env:"FRONTIERS_SEED"`
	Players   []string `env:"FRONTIERS_PLAYERS" envDefault:"spacer,pirate" envSeparator:","`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	var s settings
	if err := env.Parse(&s); err != nil {
		log.Fatal().Err(err).Msg("invalid environment")
	}
	if s.Seed == 0 {
		s.Seed = uint64(time.Now().UnixNano())
	}

	if err := config.Load(s.ConfigDir); err != nil {
		log.Warn().Err(err).Msg("using default configuration")
	}
	level, err := zerolog.ParseLevel(config.GetString("logLevel"))
	if err != nil {
		log.Warn().Err(err).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch s.Mode {
	case "match":
		err = runMatch(ctx, s)
	case "personalities", "throughput":
		err = runExperiment(ctx, s)
	default:
		err = fmt.Errorf("unknown mode %q", s.Mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", s.Mode)
	}
}

func runMatch(ctx context.Context, s settings) error {
	types := make([]game.PlayerType, len(s.Players))
	for i, name := range s.Players {
		t, err := game.ParsePlayerType(name)
		if err != nil {
			return err
		}
		if !t.IsAI() {
			return fmt.Errorf("player %d: only AI players can be run from the command line", i+1)
		}
		types[i] = t
	}

	state, err := game.NewGameState(len(types), types, s.Seed)
	if err != nil {
		return err
	}

	agents := make([]agent.Agent, len(types))
	for i, t := range types {
		personality := config.Personality(t)
		seed := s.Seed + uint64(i) + 1
		agents[i] = agent.NewSearchAgent(searcher.NewBFS(
			config.GetInt("search.goroutines"),
			searcher.WithDuration(personality.ThinkingTime),
			searcher.WithNodeBudget(config.GetInt("search.nodeBudget")),
			searcher.WithEvaluationFn(game.NewEvaluator(personality, seed)),
			searcher.WithSeed(seed),
		))
	}

	options := []engine.Option{
		engine.WithMaxTurns(config.GetInt("engine.maxTurns")),
		engine.WithPollInterval(config.GetDuration("engine.pollInterval")),
	}
	if driver := config.GetString("store.driver"); driver != "" {
		st, err := store.Open(driver, config.GetString("store.dsn"), log.Logger)
		if err != nil {
			return err
		}
		defer st.Close()
		options = append(options, engine.WithStore(st))
	}

	e := engine.NewLocalEngine(state, agents, options...)
	winners, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}

	for _, line := range state.Log() {
		fmt.Println(line)
	}
	for _, w := range winners {
		log.Info().Msgf("winner: %s (%d VP)", state.Players[w].Name(), state.VictoryPoints(w))
	}
	log.Info().Str("match", gameMetric.MatchID).Msgf("%d turns, %d moves in %s", gameMetric.Turns, gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}

func runExperiment(ctx context.Context, s settings) error {
	es := experiments.Settings{
		Games:      config.GetInt("experiments.games"),
		OutputDir:  config.GetString("experiments.outputDir"),
		MaxTurns:   config.GetInt("engine.maxTurns"),
		NodeBudget: config.GetInt("search.nodeBudget"),
		Seed:       s.Seed,
	}

	run := experiments.RunPersonalityExperiment
	if s.Mode == "throughput" {
		run = experiments.RunThroughputExperiment
		es.NodeBudget = 0
	}
	dir, err := run(ctx, es)
	if err != nil {
		return err
	}
	log.Info().Msgf("results written to %s", dir)
	return nil
}
