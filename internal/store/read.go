package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Run is one journaled iteration.
type Run struct {
	ID       uuid.UUID
	Seq      int
	Outcome  string
	Failures int
}

// Result is one test's record within a run.
type Result struct {
	RunID    uuid.UUID
	Index    int
	Name     string
	Ran      bool
	Passed   bool
	Messages []string
}

// Flake is a test whose outcome was not the same in every run.
type Flake struct {
	Index  int
	Name   string
	Passed int // Runs in which the test passed
	Runs   int // Runs in which the test ran
}

// Runs returns every journaled run ordered by seq.
// Returns an empty slice (not nil) if nothing was recorded.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, outcome, failures
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var id string
		if err := rows.Scan(&id, &r.Seq, &r.Outcome, &r.Failures); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Results returns the per-test records of one run in registration order.
func (s *Store) Results(ctx context.Context, runID uuid.UUID) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, name, ran, passed, messages
		FROM results
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		r := Result{RunID: runID}
		var msgJSON string
		if err := rows.Scan(&r.Index, &r.Name, &r.Ran, &r.Passed, &msgJSON); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(msgJSON), &r.Messages); err != nil {
			return nil, fmt.Errorf("decode messages of %q: %w", r.Name, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// Flaky returns the tests that passed in some runs and failed in others,
// ordered by test index. Runs in which a test did not execute are ignored.
func (s *Store) Flaky(ctx context.Context) ([]Flake, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, name, SUM(passed), COUNT(*)
		FROM results
		WHERE ran = 1
		GROUP BY idx, name
		HAVING SUM(passed) > 0 AND SUM(passed) < COUNT(*)
		ORDER BY idx ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query flaky: %w", err)
	}
	defer rows.Close()

	flakes := []Flake{}
	for rows.Next() {
		var f Flake
		if err := rows.Scan(&f.Index, &f.Name, &f.Passed, &f.Runs); err != nil {
			return nil, fmt.Errorf("scan flake: %w", err)
		}
		flakes = append(flakes, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flaky: %w", err)
	}
	return flakes, nil
}
