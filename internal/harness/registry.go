package harness

import (
	"errors"
	"math"
	"strings"
)

// testPrefix is stripped from raw names. The match is exact and
// case-sensitive.
const testPrefix = "test_"

// initialCapacity is the registry capacity after the first registration.
const initialCapacity = 4

// Entry is one registered test together with its recorded outcome.
type Entry struct {
	Name     string // Display name
	NameLen  int    // len(Name), cached for report alignment
	Test     Test
	Result   bool     // True iff no assertion failed while the body ran
	Messages []string // Diagnostics of a failed run; empty otherwise
	Ran      bool     // Result and Messages reflect an actual run
}

// Message returns the last diagnostic, or "" when there is none.
func (e Entry) Message() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[len(e.Messages)-1]
}

// DisplayName derives the human-readable name from a raw identifier:
// a leading "test_" is removed and underscores become spaces.
func DisplayName(raw string) string {
	return strings.ReplaceAll(strings.TrimPrefix(raw, testPrefix), "_", " ")
}

// Register catalogs test under rawName. It does not run anything.
//
// Both arguments are required. On error the registry is unchanged.
func (s *Suite) Register(test Test, rawName string) error {
	if s == nil {
		return &RegistrationError{Name: rawName, Reason: "nil suite"}
	}
	if s.closed {
		return ErrClosed
	}
	if isNilTest(test) {
		return &RegistrationError{Name: rawName, Reason: "nil test function"}
	}
	if rawName == "" {
		return &RegistrationError{Reason: "empty name"}
	}

	if len(s.entries) == cap(s.entries) {
		grown, err := grow(s.entries)
		if err != nil {
			return &RegistrationError{Name: rawName, Reason: err.Error()}
		}
		s.entries = grown
	}

	name := DisplayName(rawName)
	s.entries = append(s.entries, Entry{
		Name:    name,
		NameLen: len(name),
		Test:    test,
	})
	if len(name) > s.maxNameLength {
		s.maxNameLength = len(name)
	}

	s.logger.Debug("test registered",
		"index", len(s.entries)-1,
		"raw_name", rawName,
		"name", name,
		"capacity", cap(s.entries),
	)
	return nil
}

// RegisterFunc is Register for a plain function.
func (s *Suite) RegisterFunc(fn func(*Suite), rawName string) error {
	if fn == nil {
		return &RegistrationError{Name: rawName, Reason: "nil test function"}
	}
	return s.Register(Func(fn), rawName)
}

// grow returns a copy of entries with doubled capacity (4 when empty).
// The input slice is left untouched, so a failure cannot desynchronize
// the registry.
func grow(entries []Entry) ([]Entry, error) {
	oldCap := cap(entries)
	newCap := initialCapacity
	if oldCap > 0 {
		if oldCap > math.MaxInt/2 {
			return nil, errCapacityOverflow
		}
		newCap = oldCap * 2
	}
	grown := make([]Entry, len(entries), newCap)
	copy(grown, entries)
	return grown, nil
}

var errCapacityOverflow = errors.New("registry capacity overflow")

// isNilTest reports whether t is nil or wraps a nil Func.
func isNilTest(t Test) bool {
	if t == nil {
		return true
	}
	if f, ok := t.(Func); ok && f == nil {
		return true
	}
	return false
}
