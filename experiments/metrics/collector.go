package metrics

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type SearchMetric struct {
	Goroutines int
	NodeBudget int
	Duration   time.Duration
	Nodes      int // expanded states
	Terminals  int // turn-ending states scored
	Duplicates int // children dropped by fingerprint
	Depth      int // deepest completed level
	TimedOut   bool
}

type MoveMetric struct {
	Step   int
	Player int // Seat index
	Move   string
	SearchMetric
}

type GameMetric struct {
	MatchID        string
	Players        int
	StartingPlayer int   // Seat index
	Winners        []int // Seat indices
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	Turns          int
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, nodeBudget int)
	AddNode()
	AddTerminal()
	AddDuplicate()
	SetDepth(depth int)
	SetTimedOut()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	nodeBudget int
	startTime  time.Time
	nodes      atomic.Int64
	terminals  atomic.Int64
	duplicates atomic.Int64
	depth      atomic.Int64
	timedOut   atomic.Bool

	otel *instruments
}

// NewCollector counts search work and forwards the totals of each search to the global
// OpenTelemetry meter, which is a no-op unless a provider is installed.
func NewCollector() Collector {
	c := &collector{}
	otelInstruments, err := newInstruments()
	if err != nil {
		log.Warn().Err(err).Msg("search metrics will not be exported")
	}
	c.otel = otelInstruments
	return c
}

func (m *collector) Start(goroutines, nodeBudget int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.nodeBudget = nodeBudget
	m.nodes.Store(0)
	m.terminals.Store(0)
	m.duplicates.Store(0)
	m.depth.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) AddDuplicate() {
	m.duplicates.Add(1)
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int64(depth))
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() SearchMetric {
	s := SearchMetric{
		Goroutines: m.goroutines,
		NodeBudget: m.nodeBudget,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Terminals:  int(m.terminals.Load()),
		Duplicates: int(m.duplicates.Load()),
		Depth:      int(m.depth.Load()),
		TimedOut:   m.timedOut.Load(),
	}
	if m.otel != nil {
		m.otel.record(s)
	}
	return s
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, nodeBudget int) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddTerminal()                     {}
func (m *dummyCollector) AddDuplicate()                    {}
func (m *dummyCollector) SetDepth(depth int)               {}
func (m *dummyCollector) SetTimedOut()                     {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }

type instruments struct {
	searches metric.Int64Counter
	nodes    metric.Int64Counter
	timeouts metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments() (*instruments, error) {
	m := meter()
	var (
		in  instruments
		err error
	)
	if in.searches, err = m.Int64Counter("search.runs",
		metric.WithDescription("Completed searches")); err != nil {
		return nil, err
	}
	if in.nodes, err = m.Int64Counter("search.nodes",
		metric.WithDescription("States expanded by searches")); err != nil {
		return nil, err
	}
	if in.timeouts, err = m.Int64Counter("search.timeouts",
		metric.WithDescription("Searches cut short by their deadline or node budget")); err != nil {
		return nil, err
	}
	if in.duration, err = m.Float64Histogram("search.duration",
		metric.WithDescription("Search wall time"), metric.WithUnit("s")); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *instruments) record(s SearchMetric) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.Int("goroutines", s.Goroutines))
	in.searches.Add(ctx, 1, attrs)
	in.nodes.Add(ctx, int64(s.Nodes), attrs)
	if s.TimedOut {
		in.timeouts.Add(ctx, 1, attrs)
	}
	in.duration.Record(ctx, s.Duration.Seconds(), attrs)
}
