package harness

import (
	"fmt"
	"time"
)

// State is the execution controller's coarse position.
type State int

// Execution states.
const (
	NotStarted State = iota
	Running
	Finished
)

var stateNames = [...]string{"NotStarted", "Running", "Finished"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Phase refines Running.
type Phase int

// Running phases.
const (
	PhaseNone Phase = iota
	PhaseBeforeAll
	PhaseBeforeEach
	PhaseBody
	PhaseAfterEach
	PhaseAfterAll
)

var phaseNames = [...]string{"None", "BeforeAll", "BeforeEach", "Body", "AfterEach", "AfterAll"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Outcome is the overall classification of a run.
type Outcome int

// Run outcomes.
const (
	Passed Outcome = iota
	AssertionFailed
	InternalFailure
)

var outcomeNames = [...]string{"Passed", "AssertionFailed", "InternalFailure"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Err converts the outcome to an error: nil for Passed, ErrAssertionFailed
// for AssertionFailed and ErrInternal otherwise.
func (o Outcome) Err() error {
	switch o {
	case Passed:
		return nil
	case InternalFailure:
		return ErrInternal
	default:
		return ErrAssertionFailed
	}
}

// Timing holds the optional timing figures of one test.
type Timing struct {
	Measured bool
	Test     time.Duration // Body execution time
	Overhead time.Duration // Harness bookkeeping after the body
}

// Report is everything a Reporter needs to render one test line.
type Report struct {
	Index    int
	Name     string
	NameLen  int
	Width    int // Longest display name, for column alignment
	Passed   bool
	Messages []string
	Timing   Timing
}

// Summary is the read-only tally of a finished run.
type Summary struct {
	Total    int // Registered tests
	Passed   int // Tests whose recorded result is true
	Failed   int // Tests whose recorded result is false
	Failures int // Failed assertions across the whole run
	Failing  []Entry
}

// Reporter renders per-test lines and the final summary.
type Reporter interface {
	Report(r Report)
	Summary(sum Summary)
}

type discard struct{}

func (discard) Report(Report)   {}
func (discard) Summary(Summary) {}

// Discard is a Reporter that renders nothing.
var Discard Reporter = discard{}
