package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/chest/internal/harness"
)

// RecordRun journals one finished iteration: the overall outcome, the
// failure counter and every entry's result. seq orders runs and must be
// unique. Returns the new run's ID.
func (s *Store) RecordRun(ctx context.Context, seq int, outcome harness.Outcome, failures int, entries []harness.Entry) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, outcome, failures)
		VALUES (?, ?, ?, ?)
	`, id.String(), seq, outcome.String(), failures)
	if err != nil {
		return uuid.Nil, fmt.Errorf("record run %d: %w", seq, err)
	}

	for i, e := range entries {
		if err := writeResult(ctx, tx, id, i, e); err != nil {
			return uuid.Nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("record run %d: commit: %w", seq, err)
	}
	return id, nil
}

func writeResult(ctx context.Context, tx *sql.Tx, runID uuid.UUID, idx int, e harness.Entry) error {
	messages := e.Messages
	if messages == nil {
		messages = []string{}
	}
	msgJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("write result %q: %w", e.Name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO results (run_id, idx, name, ran, passed, messages)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID.String(), idx, e.Name, e.Ran, e.Result, string(msgJSON))
	if err != nil {
		return fmt.Errorf("write result %q: %w", e.Name, err)
	}
	return nil
}
