package engine

import (
	"context"
	"fmt"
	"time"

	"frontiers/experiments/metrics"
	"frontiers/game"
	"frontiers/meta"
	"frontiers/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Option func(e *LocalEngine)

func WithStore(store Store) Option {
	return func(e *LocalEngine) {
		e.store = store
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithPollInterval sets how often agents are asked whether they finished thinking.
func WithPollInterval(interval time.Duration) Option {
	return func(e *LocalEngine) {
		if interval > 0 {
			e.pollInterval = interval
		}
	}
}

// WithListener receives every event of the live state after the engine has logged it.
func WithListener(listener func(game.Event)) Option {
	return func(e *LocalEngine) {
		e.listener = listener
	}
}

// LocalEngine drives agents through a match on a single goroutine. It is the only writer of the
// live state.
type LocalEngine struct {
	ID           string
	State        *game.GameState
	Agents       []agent.Agent
	store        Store
	maxTurns     int
	pollInterval time.Duration
	listener     func(game.Event)
}

func NewLocalEngine(state *game.GameState, agents []agent.Agent, options ...Option) *LocalEngine {
	if len(agents) != len(state.Players) {
		panic("number of players does not match number of agents")
	}

	e := &LocalEngine{ // Default values
		ID:           uuid.NewString(),
		State:        state,
		Agents:       agents,
		maxTurns:     meta.MAX_TURNS,
		pollInterval: meta.POLL_INTERVAL,
	}
	for _, option := range options {
		option(e)
	}

	state.Subscribe(e.onEvent)
	return e
}

func (e *LocalEngine) onEvent(event game.Event) {
	log.Debug().Str("match", e.ID).Str("event", event.Name).Msgf("%v", event.Payload)
	if e.listener != nil {
		e.listener(event)
	}
}

func (e *LocalEngine) Run(ctx context.Context) ([]int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		MatchID:        e.ID,
		Players:        len(e.Agents),
		StartingPlayer: e.State.CurrentPlayer,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	if e.store != nil {
		types := make([]game.PlayerType, len(e.State.Players))
		for i, p := range e.State.Players {
			types[i] = p.Type
		}
		if err := e.store.CreateMatch(ctx, e.ID, types); err != nil {
			return nil, gameMetric, nil, err
		}
	}

	log.Info().Str("match", e.ID).Msgf("player %d is starting", e.State.CurrentPlayer+1)

	limiter := rate.NewLimiter(rate.Every(e.pollInterval), 1)
	step := 0
	turns := 0
	var runErr error

	for !e.State.Over && turns < e.maxTurns && step < MaxMoves {
		if err := e.beginTurn(ctx); err != nil {
			runErr = err
			break
		}

		player := e.State.CurrentPlayer
		current := e.Agents[player]
		if err := current.StartTurn(ctx, e.State); err != nil {
			runErr = fmt.Errorf("player %d failed to start turn: %w", player+1, err)
			break
		}

		for !current.IsTurnDone(e.State) && step < MaxMoves {
			if err := e.awaitThinking(ctx, limiter, current); err != nil {
				runErr = err
				break
			}
			move, searchMetric, err := current.Step(e.State)
			if err != nil {
				runErr = fmt.Errorf("player %d: %w", player+1, err)
				break
			}
			if move == nil {
				continue
			}
			step++
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Player:       player,
				Move:         move.String(),
				SearchMetric: searchMetric,
			})
			e.drainSounds()
		}
		if runErr != nil {
			current.Cancel()
			break
		}
		turns++
		log.Debug().Str("match", e.ID).Msgf("turn %d completed by player %d", turns, player+1)
	}

	if runErr == nil && !e.State.Over {
		log.Info().Str("match", e.ID).Msgf("stopped after %d turns (no winner yet)", turns)
	}

	winners := e.State.WinningPlayers()
	gameMetric.Winners = winners
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Turns = turns
	gameMetric.TotalMoves = step

	if e.store != nil && runErr == nil {
		// The match context may already be done; record the outcome regardless
		if err := e.store.FinishMatch(context.WithoutCancel(ctx), e.ID, winners, e.State.Log()); err != nil {
			runErr = err
		}
	}

	log.Info().Str("match", e.ID).Msgf("match over after %d turns, winners %v", turns, winners)
	return winners, gameMetric, moveMetrics, runErr
}

// beginTurn records the start of the current player's turn as an undo point and a snapshot.
func (e *LocalEngine) beginTurn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.State.CreateUndoPoint(); err != nil {
		return fmt.Errorf("failed to create undo point: %w", err)
	}
	e.drainSounds()

	if e.store == nil {
		return nil
	}
	data, err := e.State.Serialize()
	if err != nil {
		return err
	}
	return e.store.SaveSnapshot(ctx, e.ID, e.State.Turn, data)
}

func (e *LocalEngine) awaitThinking(ctx context.Context, limiter *rate.Limiter, a agent.Agent) error {
	for !a.IsThinkingDone() {
		if err := limiter.Wait(ctx); err != nil {
			a.Cancel()
			return fmt.Errorf("waiting for agent: %w", err)
		}
	}
	return nil
}

func (e *LocalEngine) drainSounds() {
	for _, sound := range e.State.DrainSounds() {
		log.Trace().Str("match", e.ID).Str("sound", sound).Msg("play")
	}
}
