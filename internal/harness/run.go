package harness

import "time"

// Run executes every registered test in order and returns the overall
// outcome: Passed iff no assertion has failed since New.
//
// Execution flow:
//  1. before-all hook
//  2. for each test: before-each, body, outcome capture, report, after-each
//  3. after-all hook
//
// A failing assertion never stops a body. Panics are not recovered.
func (s *Suite) Run() Outcome {
	if s == nil {
		return InternalFailure
	}
	if s.locking {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if s.closed {
		return InternalFailure
	}
	s.running.Store(true)
	defer s.running.Store(false)

	s.state = Running
	s.logger.Debug("run starting", "tests", len(s.entries), "failures", s.failures)

	s.invokeHook(PhaseBeforeAll, s.beforeAll)
	for i := range s.entries {
		s.runOne(i)
	}
	s.invokeHook(PhaseAfterAll, s.afterAll)

	s.state = Finished
	s.phase = PhaseNone
	s.current = -1

	outcome := Passed
	if s.failures != 0 {
		outcome = AssertionFailed
	}
	s.logger.Debug("run finished", "outcome", outcome.String(), "failures", s.failures)
	return outcome
}

// runOne drives the per-test phases of entry i.
func (s *Suite) runOne(i int) {
	s.current = i
	s.invokeHook(PhaseBeforeEach, s.beforeEach)

	s.phase = PhaseBody
	baseline := s.failures
	s.pending = nil
	var start, mid time.Time
	if s.measure {
		start = s.clock.Now()
	}
	s.entries[i].Test.Invoke(s)
	if s.measure {
		mid = s.clock.Now()
	}

	e := &s.entries[i]
	e.Ran = true
	e.Result = s.failures == baseline
	e.Messages = nil
	if !e.Result && len(s.pending) > 0 {
		e.Messages = s.pending
		s.pending = nil
	}

	timing := Timing{Measured: s.measure}
	if s.measure {
		timing.Test = mid.Sub(start)
		timing.Overhead = s.clock.Now().Sub(mid)
	}

	s.logger.Debug("test finished",
		"index", i,
		"name", e.Name,
		"passed", e.Result,
		"messages", len(e.Messages),
	)
	s.reporter.Report(Report{
		Index:    i,
		Name:     e.Name,
		NameLen:  e.NameLen,
		Width:    s.maxNameLength,
		Passed:   e.Result,
		Messages: append([]string(nil), e.Messages...),
		Timing:   timing,
	})

	s.invokeHook(PhaseAfterEach, s.afterEach)
	s.current = -1
}

func (s *Suite) invokeHook(p Phase, h Hook) {
	s.phase = p
	if h == nil {
		return
	}
	s.logger.Debug("hook", "phase", p.String(), "test", s.current)
	h.Invoke(s)
}

// Summary tallies the recorded results. It is read-only.
func (s *Suite) Summary() Summary {
	sum := Summary{Total: len(s.entries), Failures: s.failures}
	for i, e := range s.entries {
		if e.Result {
			sum.Passed++
			continue
		}
		if !e.Ran {
			continue
		}
		sum.Failed++
		sum.Failing = append(sum.Failing, s.Entry(i))
	}
	return sum
}

// Report renders the summary through the configured Reporter.
func (s *Suite) Report() {
	s.reporter.Summary(s.Summary())
}
