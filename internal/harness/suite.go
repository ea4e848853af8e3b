package harness

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Test is a registered test body. Func adapts a plain function.
type Test interface {
	Invoke(s *Suite)
}

// Hook is a lifecycle callback. A nil Hook means "no hook".
type Hook = Test

// Func adapts an ordinary function to Test and Hook.
type Func func(s *Suite)

// Invoke calls f(s).
func (f Func) Invoke(s *Suite) { f(s) }

// Clock is the time source used for per-test timing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Suite owns the registry, the outcome records and the run-scoped state of
// one test run. A Suite is created by New and released by Close.
type Suite struct {
	entries       []Entry
	failures      int
	maxNameLength int
	pending       []string // staged diagnostics of the current test window

	beforeAll  Hook
	afterAll   Hook
	beforeEach Hook
	afterEach  Hook

	state   State
	phase   Phase
	current int // index of the running test, -1 outside PerTest

	locking bool
	mu      sync.Mutex
	running atomic.Bool

	clock    Clock
	measure  bool
	reporter Reporter
	phrases  *Phrasebook
	logger   *slog.Logger
	closed   bool
}

// Option configures a Suite.
type Option func(*Suite)

// WithReporter sets the collaborator that renders per-test lines and the
// summary. The default discards everything.
func WithReporter(r Reporter) Option {
	return func(s *Suite) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithLocking wraps each Run in a mutex so that concurrent callers on one
// Suite serialize.
func WithLocking(enabled bool) Option {
	return func(s *Suite) { s.locking = enabled }
}

// WithTiming enables per-test timing figures in reports.
func WithTiming(enabled bool) Option {
	return func(s *Suite) { s.measure = enabled }
}

// WithClock replaces the wall clock used for timing.
func WithClock(c Clock) Option {
	return func(s *Suite) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithPhrasebook sets the operator phrase table used in Compare messages.
func WithPhrasebook(p *Phrasebook) Option {
	return func(s *Suite) {
		if p != nil {
			s.phrases = p
		}
	}
}

// WithLogger sets the structured logger. The default discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Suite) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty Suite.
func New(opts ...Option) *Suite {
	s := &Suite{
		current:  -1,
		clock:    systemClock{},
		reporter: Discard,
		phrases:  DefaultPhrasebook(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases every entry and staged message. Subsequent registrations
// fail with ErrClosed and Run reports InternalFailure. Close is idempotent
// and safe on a nil Suite. It fails with ErrRunning while Run is in
// progress, including when called from a hook or test body.
func (s *Suite) Close() error {
	if s == nil {
		return nil
	}
	if s.running.Load() {
		return ErrRunning
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for i := range s.entries {
		s.entries[i] = Entry{}
	}
	s.entries = nil
	s.pending = nil
	s.beforeAll, s.afterAll, s.beforeEach, s.afterEach = nil, nil, nil, nil
	s.closed = true
	return nil
}

// SetBeforeAll sets the hook run once before the first test.
func (s *Suite) SetBeforeAll(h Hook) error {
	return s.setHook(func(s *Suite) *Hook { return &s.beforeAll }, h)
}

// SetAfterAll sets the hook run once after the last test.
func (s *Suite) SetAfterAll(h Hook) error {
	return s.setHook(func(s *Suite) *Hook { return &s.afterAll }, h)
}

// SetBeforeEach sets the hook run before every test.
func (s *Suite) SetBeforeEach(h Hook) error {
	return s.setHook(func(s *Suite) *Hook { return &s.beforeEach }, h)
}

// SetAfterEach sets the hook run after every test.
func (s *Suite) SetAfterEach(h Hook) error {
	return s.setHook(func(s *Suite) *Hook { return &s.afterEach }, h)
}

// setHook resolves the slot only after s is known to be non-nil.
func (s *Suite) setHook(slot func(*Suite) *Hook, h Hook) error {
	if s == nil {
		return ErrInternal
	}
	if s.closed {
		return ErrClosed
	}
	if isNilTest(h) {
		h = nil
	}
	*slot(s) = h
	return nil
}

// Failures returns the number of failed assertions since New.
func (s *Suite) Failures() int { return s.failures }

// Len returns the number of registered tests.
func (s *Suite) Len() int { return len(s.entries) }

// Cap returns the registry capacity. It only ever grows.
func (s *Suite) Cap() int { return cap(s.entries) }

// MaxNameLength returns the longest display name length seen so far.
func (s *Suite) MaxNameLength() int { return s.maxNameLength }

// Entry returns a copy of the i-th registered test.
func (s *Suite) Entry(i int) Entry {
	e := s.entries[i]
	e.Messages = append([]string(nil), e.Messages...)
	return e
}

// Entries returns a copy of every registered test, in execution order.
func (s *Suite) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i := range s.entries {
		out[i] = s.Entry(i)
	}
	return out
}

// Pending returns a copy of the staged diagnostics not yet consumed.
func (s *Suite) Pending() []string {
	return append([]string(nil), s.pending...)
}

// State reports where the execution controller is.
func (s *Suite) State() State { return s.state }

// Phase reports the per-test phase while State is Running inside a test.
func (s *Suite) Phase() Phase { return s.phase }

// Current returns the index of the running test, or -1.
func (s *Suite) Current() int { return s.current }

// Logger returns the suite's logger.
func (s *Suite) Logger() *slog.Logger { return s.logger }
