package searcher

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"frontiers/experiments/metrics"
	"frontiers/game"
	"frontiers/meta"

	"github.com/rs/zerolog/log"
)

// BFS plans a whole turn by expanding every move sequence breadth-first on clones of the live
// state. Positions reached by different move orders are expanded once.
type BFS struct {
	goroutines  int
	duration    time.Duration
	hasDeadline bool
	nodeBudget  int
	seed        uint64
	seeded      bool
	evaluate    game.Evaluate
	metrics     metrics.Collector
}

type node struct {
	state *game.GameState
	moves []game.Move
	hash  game.StateHash
}

type leaf struct {
	moves []game.Move
	score float64
}

type expansion struct {
	children []node
	leaves   []leaf
}

func NewBFS(goroutines int, options ...Option) *BFS {
	b := &BFS{ // Default values
		goroutines: max(goroutines, 1),
		nodeBudget: meta.NODE_BUDGET,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(b)
	}
	if !b.seeded {
		b.seed = uint64(time.Now().UnixNano())
	}
	if b.evaluate == nil {
		b.evaluate = game.NewEvaluator(game.DefaultPersonality(game.Spacer), b.seed)
	}
	if !b.hasDeadline && b.nodeBudget == 0 {
		panic("Must specify search duration or node budget")
	}
	return b
}

// Search returns the best plan for the player to move. It never mutates state and always
// returns at least one legal move unless the game is over.
func (b *BFS) Search(ctx context.Context, state *game.GameState) Result {
	root := state.Clone()
	root.Reseed(b.seed)
	b.seed++
	player := root.CurrentPlayer

	b.metrics.Start(b.goroutines, b.nodeBudget)
	best := b.fallback(root, player)
	if len(best.moves) == 0 {
		return Result{Metric: b.metrics.Complete()}
	}

	if b.hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.duration)
		defer cancel()
	}

	var expanded atomic.Int64
	seen := map[game.StateHash]bool{root.Hash(): true}
	frontier := []node{{state: root}}
	cut := false
	depth := 0

	for len(frontier) > 0 {
		if ctx.Err() != nil || b.exhausted(&expanded) {
			cut = true
			break
		}

		results := b.expandLevel(ctx, frontier, player, &expanded)
		next := []node{}
		for _, e := range results {
			if e == nil { // Skipped after the deadline or budget ran out
				cut = true
				continue
			}
			for _, l := range e.leaves {
				if l.score > best.score {
					best = l
				}
			}
			for _, child := range e.children {
				if seen[child.hash] {
					b.metrics.AddDuplicate()
					continue
				}
				if b.nodeBudget > 0 && int64(len(next))+expanded.Load() >= int64(b.nodeBudget) {
					cut = true
					break
				}
				seen[child.hash] = true
				next = append(next, child)
			}
		}

		if !cut {
			depth++
			b.metrics.SetDepth(depth)
		}
		frontier = next
	}

	if cut {
		b.metrics.SetTimedOut()
	}
	metric := b.metrics.Complete()
	if cut {
		log.Warn().Err(ErrSearchTimeoutExceeded).Msgf("player %d search stopped at depth %d after %d positions, best plan has %d moves",
			player+1, depth, len(seen), len(best.moves))
	}
	return Result{Moves: best.moves, Score: best.score, Metric: metric, TimedOut: cut}
}

// fallback is the plan held before any expansion: end the turn now, or the first legal move
// when the turn cannot end yet.
func (b *BFS) fallback(root *game.GameState, player int) leaf {
	moves := root.LegalMoves()
	if len(moves) == 0 {
		return leaf{score: math.Inf(-1)}
	}
	if end, ok := b.endTurn(root, nil, player); ok {
		return end
	}
	return leaf{moves: []game.Move{moves[0]}, score: math.Inf(-1)}
}

// endTurn scores a position at its EndTurn edge. It reports false while the turn cannot end.
func (b *BFS) endTurn(state *game.GameState, moves []game.Move, player int) (leaf, bool) {
	end := state.Clone()
	if err := end.CommitMove(game.EndTurn{}); err != nil {
		return leaf{}, false
	}
	b.metrics.AddTerminal()
	return leaf{
		moves: append(moves[:len(moves):len(moves)], game.EndTurn{}),
		score: b.evaluate(end, player),
	}, true
}

func (b *BFS) exhausted(expanded *atomic.Int64) bool {
	return b.nodeBudget > 0 && expanded.Load() >= int64(b.nodeBudget)
}

// expandLevel expands the frontier with a pool of goroutines. Results keep frontier order so the
// merge, and with it the tie-break, does not depend on scheduling.
func (b *BFS) expandLevel(ctx context.Context, frontier []node, player int, expanded *atomic.Int64) []*expansion {
	results := make([]*expansion, len(frontier))
	task := make(chan int, len(frontier))
	for i := range frontier {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < min(b.goroutines, len(frontier)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range task {
				if ctx.Err() != nil {
					continue
				}
				if count := expanded.Add(1); b.nodeBudget > 0 && count > int64(b.nodeBudget) {
					continue
				}
				results[index] = b.expand(frontier[index], player)
				b.metrics.AddNode()
			}
		}()
	}

	wg.Wait()
	return results
}

// expand plays every legal move on a clone. Moves that end the turn, end the game or depend on
// chance produce scored leaves; the rest produce children for the next level, each also scored
// at its EndTurn edge so a search cut short still weighs them. The node's own EndTurn edge was
// scored when the node was reached.
func (b *BFS) expand(n node, player int) *expansion {
	e := &expansion{}
	for _, move := range n.state.LegalMoves() {
		if _, ok := move.(game.EndTurn); ok {
			continue
		}
		child := n.state.Clone()
		if err := child.CommitMove(move); err != nil {
			log.Error().Err(err).Msg("legal move rejected during search")
			continue
		}
		moves := append(n.moves[:len(n.moves):len(n.moves)], move)

		if move.IsStochastic() || child.Over || child.CurrentPlayer != player {
			e.leaves = append(e.leaves, leaf{moves: moves, score: b.evaluate(child, player)})
			b.metrics.AddTerminal()
			continue
		}
		if end, ok := b.endTurn(child, moves, player); ok {
			e.leaves = append(e.leaves, end)
		}
		e.children = append(e.children, node{state: child, moves: moves, hash: child.Hash()})
	}
	return e
}
