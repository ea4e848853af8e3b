// Package store journals repeated harness runs in SQLite.
//
// The journal backs --repeat: every iteration of a suite is recorded as a
// run (keyed by a random UUID) with one result row per test. Tests whose
// outcome differs across runs are reported as flaky.
//
// # Tables
//
//   - runs: one row per iteration, ordered by seq
//   - results: one row per (run, test index) with pass/fail and messages
//
// # Ordering
//
// All queries order by seq and test index, never by insertion time, so
// reports are deterministic.
//
// # Database Configuration
//
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// OpenMemory keeps the journal in process memory; nothing touches disk.
package store
