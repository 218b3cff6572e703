// Package progress models long-running operations as a fixed list of phases
// advanced by a ticker and resolved by the operation's outcome.
package progress

import (
	"context"
	"errors"
	"sync"
	"time"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

const DefaultInterval = 2 * time.Second

var (
	ErrAbandoned      = errors.New("operation abandoned")
	ErrAlreadyStarted = errors.New("progress tracker already started")
	ErrNoPhases       = errors.New("progress tracker has no phases")
)

type Phase struct {
	Key   string
	Label string
}

var AnalysisPhases = []Phase{
	{Key: "init", Label: "Waking up the analysis engine"},
	{Key: "parse", Label: "Reading document structure"},
	{Key: "extract", Label: "Extracting high-value clauses"},
	{Key: "legal", Label: "Mapping compliance risks"},
	{Key: "finalize", Label: "Assembling the report"},
}

var GenerationPhases = []Phase{
	{Key: "match", Label: "Injecting company profile"},
	{Key: "draft", Label: "Drafting technical memory"},
	{Key: "check", Label: "Polishing compliance logic"},
	{Key: "score", Label: "Estimating win probability"},
	{Key: "export", Label: "Ready for export"},
}

// AssetPhases covers both rendering a new visual and editing an existing one.
var AssetPhases = []Phase{
	{Key: "brief", Label: "Composing the visual brief"},
	{Key: "render", Label: "Rendering the scene"},
	{Key: "light", Label: "Balancing light and materials"},
	{Key: "deliver", Label: "Delivering the image"},
}

type Snapshot struct {
	State State
	Index int
	Total int
	Phase Phase
	Err   error
}

func (s Snapshot) Done() bool {
	return s.State == StateCompleted || s.State == StateFailed
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFactory func(interval time.Duration) Ticker

type Observer func(Snapshot)

type Option func(*Tracker)

func WithInterval(interval time.Duration) Option {
	return func(t *Tracker) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

func WithTicker(factory TickerFactory) Option {
	return func(t *Tracker) {
		if factory != nil {
			t.newTicker = factory
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(t *Tracker) {
		if observer != nil {
			t.observers = append(t.observers, observer)
		}
	}
}

// Tracker moves Idle -> Running -> Completed|Failed. While running, a ticker
// goroutine advances the phase index up to the second-to-last phase; only a
// resolution reaches the last one.
type Tracker struct {
	phases    []Phase
	interval  time.Duration
	newTicker TickerFactory
	observers []Observer

	mu       sync.Mutex
	state    State
	index    int
	err      error
	resolved bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(phases []Phase, opts ...Option) *Tracker {
	t := &Tracker{
		phases:    append([]Phase(nil), phases...),
		interval:  DefaultInterval,
		newTicker: newTimeTicker,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *Tracker) Start(ctx context.Context) error {
	if len(t.phases) == 0 {
		return ErrNoPhases
	}

	t.mu.Lock()
	if t.state != StateIdle {
		t.mu.Unlock()
		return ErrAlreadyStarted
	}

	tickCtx, cancel := context.WithCancel(ctx)
	t.state = StateRunning
	t.index = 0
	t.cancel = cancel
	t.done = make(chan struct{})
	ticker := t.newTicker(t.interval)
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	go t.run(tickCtx, ticker)

	t.notify(snapshot)
	return nil
}

func (t *Tracker) Complete() {
	t.resolve(StateCompleted, nil, true)
}

func (t *Tracker) Fail(err error) {
	t.resolve(StateFailed, err, true)
}

// Abandon tears the run down when nobody is waiting for it anymore. Later
// calls to Complete or Fail are ignored and observers are not notified.
func (t *Tracker) Abandon() {
	t.resolve(StateFailed, ErrAbandoned, false)
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) resolve(state State, err error, forceLast bool) {
	t.mu.Lock()
	if t.state != StateRunning || t.resolved {
		t.mu.Unlock()
		return
	}
	t.resolved = true
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	cancel()
	<-done

	t.mu.Lock()
	t.state = state
	t.err = err
	if forceLast {
		t.index = len(t.phases) - 1
	}
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	if forceLast {
		t.notify(snapshot)
	}
}

func (t *Tracker) run(ctx context.Context, ticker Ticker) {
	defer close(t.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			t.advance()
		}
	}
}

func (t *Tracker) advance() {
	t.mu.Lock()
	if t.state != StateRunning || t.index >= len(t.phases)-2 {
		t.mu.Unlock()
		return
	}
	t.index++
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snapshot)
}

func (t *Tracker) snapshotLocked() Snapshot {
	snapshot := Snapshot{State: t.state, Index: t.index, Total: len(t.phases), Err: t.err}
	if t.index >= 0 && t.index < len(t.phases) {
		snapshot.Phase = t.phases[t.index]
	}
	return snapshot
}

func (t *Tracker) notify(snapshot Snapshot) {
	for _, observer := range t.observers {
		observer(snapshot)
	}
}

// Track runs fn under a fresh tracker run. When ctx ends before fn returns,
// the tracker is abandoned and fn's eventual outcome no longer moves it.
func Track(ctx context.Context, tracker *Tracker, fn func(context.Context) error) error {
	if err := tracker.Start(ctx); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, tracker.Abandon)
	defer stop()

	if err := fn(ctx); err != nil {
		tracker.Fail(err)
		return err
	}

	tracker.Complete()
	return nil
}

type timeTicker struct {
	ticker *time.Ticker
}

func newTimeTicker(interval time.Duration) Ticker {
	return timeTicker{ticker: time.NewTicker(interval)}
}

func (t timeTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t timeTicker) Stop() {
	t.ticker.Stop()
}
