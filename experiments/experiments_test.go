package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"frontiers/experiments/metrics"
	"frontiers/game"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExperiments(t *testing.T) {
	t.Run("personalities", func(t *testing.T) {
		dir, err := RunPersonalityExperiment(context.Background(), Settings{
			Games:      1,
			OutputDir:  t.TempDir(),
			MaxTurns:   2,
			NodeBudget: 30,
			Seed:       1,
		})
		require.NoError(t, err)

		configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, configs, 1+4)
		require.Equal(t, "30", configs[1][4], "node budget override applies to every agent")

		games := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, games, 1+6, "three personalities against the baseline from both seats")
		require.Equal(t, "0 1", games[1][2])
		require.Equal(t, "1 0", games[2][2])

		moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.Greater(t, len(moves), 1)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := RunThroughputExperiment(ctx, Settings{Games: 1, OutputDir: t.TempDir(), MaxTurns: 1})
		require.Error(t, err)
	})
}

func TestCreateBFS(t *testing.T) {
	over, err := game.NewGameState(2, []game.PlayerType{game.Spacer, game.Spacer}, 1)
	require.NoError(t, err)
	over.Over = true

	budget := func(c metrics.AgentConfig) int {
		return createBFS(c, 1).Search(context.Background(), over).Metric.NodeBudget
	}

	t.Run("timed searches without a budget are unbounded", func(t *testing.T) {
		require.Equal(t, 0, budget(metrics.AgentConfig{Personality: "spacer", Goroutines: 1, Duration: time.Second}))
	})

	t.Run("budgets are kept", func(t *testing.T) {
		require.Equal(t, 50, budget(metrics.AgentConfig{Personality: "spacer", Goroutines: 1, Duration: time.Second, NodeBudget: 50}))
		require.Equal(t, 50, budget(metrics.AgentConfig{Personality: "pirate", Goroutines: 1, NodeBudget: 50}))
	})
}
