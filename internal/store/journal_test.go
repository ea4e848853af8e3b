package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chest/internal/harness"
)

func entry(name string, passed bool, messages ...string) harness.Entry {
	return harness.Entry{Name: name, NameLen: len(name), Ran: true, Result: passed, Messages: messages}
}

func TestRecordRun_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	id, err := s.RecordRun(ctx, 1, harness.AssertionFailed, 2, []harness.Entry{
		entry("alpha one", true),
		entry("beta", false, "  'abc' and 'abd' are not EQUAL. (x.go:1)\n", "  second\n"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, Run{ID: id, Seq: 1, Outcome: "AssertionFailed", Failures: 2}, runs[0])

	results, err := s.Results(ctx, id)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{RunID: id, Index: 0, Name: "alpha one", Ran: true, Passed: true, Messages: []string{}}, results[0])
	assert.Equal(t, "beta", results[1].Name)
	assert.False(t, results[1].Passed)
	assert.Equal(t, []string{"  'abc' and 'abd' are not EQUAL. (x.go:1)\n", "  second\n"}, results[1].Messages)
}

func TestRecordRun_DistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	a, err := s.RecordRun(ctx, 1, harness.Passed, 0, nil)
	require.NoError(t, err)
	b, err := s.RecordRun(ctx, 2, harness.Passed, 0, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRecordRun_DuplicateSeqRollsBack(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.RecordRun(ctx, 1, harness.Passed, 0, []harness.Entry{entry("a", true)})
	require.NoError(t, err)

	_, err = s.RecordRun(ctx, 1, harness.Passed, 0, []harness.Entry{entry("a", true)})
	require.Error(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestResults_ForeignKeyEnforced(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`
		INSERT INTO results (run_id, idx, name, ran, passed, messages)
		VALUES ('missing', 0, 'x', 1, 1, '[]')
	`)
	assert.Error(t, err)
}

func TestRuns_OrderedBySeq(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	for _, seq := range []int{3, 1, 2} {
		_, err := s.RecordRun(ctx, seq, harness.Passed, 0, nil)
		require.NoError(t, err)
	}

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i, r := range runs {
		assert.Equal(t, i+1, r.Seq)
	}
}

func TestRuns_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	results, err := s.Results(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFlaky(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	iterations := [][]harness.Entry{
		{entry("stable pass", true), entry("flips", true), entry("stable fail", false, "m\n"), entry("late", true)},
		{entry("stable pass", true), entry("flips", false, "m\n"), entry("stable fail", false, "m\n"), entry("late", true)},
		{entry("stable pass", true), entry("flips", true), entry("stable fail", false, "m\n"), {Name: "late"}},
	}
	for i, entries := range iterations {
		_, err := s.RecordRun(ctx, i+1, harness.AssertionFailed, 1, entries)
		require.NoError(t, err)
	}

	flakes, err := s.Flaky(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Flake{{Index: 1, Name: "flips", Passed: 2, Runs: 3}}, flakes)
}

func TestFlaky_SingleRunIsNeverFlaky(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.RecordRun(ctx, 1, harness.AssertionFailed, 1, []harness.Entry{entry("a", false, "m\n"), entry("b", true)})
	require.NoError(t, err)

	flakes, err := s.Flaky(ctx)
	require.NoError(t, err)
	assert.Empty(t, flakes)
}

func TestRecordRun_FromSuite(t *testing.T) {
	ctx := context.Background()
	st := createTestStore(t)

	suite := harness.New()
	defer suite.Close()
	require.NoError(t, suite.RegisterFunc(func(s *harness.Suite) {
		harness.StrEq(s, "abc", "abd")
	}, "test_strings"))

	outcome := suite.Run()
	id, err := st.RecordRun(ctx, 1, outcome, suite.Failures(), suite.Entries())
	require.NoError(t, err)

	results, err := st.Results(ctx, id)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "strings", results[0].Name)
	assert.False(t, results[0].Passed)
	require.Len(t, results[0].Messages, 1)
	assert.Contains(t, results[0].Messages[0], "not EQUAL")
}
