package harness

import (
	"errors"
	"fmt"
)

// ErrInternal reports malformed or missing input: a nil suite, a nil test,
// an empty name, or a registry that cannot grow.
var ErrInternal = errors.New("chest: internal error")

// ErrClosed is returned when a closed Suite is used.
var ErrClosed = errors.New("chest: suite is closed")

// ErrRunning is returned by Close while Run is in progress.
var ErrRunning = errors.New("chest: suite is running")

// ErrAssertionFailed is the error form of the AssertionFailed outcome.
var ErrAssertionFailed = errors.New("chest: assertion failures")

// RegistrationError is returned by Register when a test cannot be cataloged.
// The registry is left exactly as it was before the call.
type RegistrationError struct {
	Name   string // Raw name passed to Register
	Reason string
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("register test: %s", e.Reason)
	}
	return fmt.Sprintf("register test %q: %s", e.Name, e.Reason)
}

// Unwrap lets errors.Is match ErrInternal.
func (e *RegistrationError) Unwrap() error {
	return ErrInternal
}

// Location identifies the source position of an assertion call.
type Location struct {
	File string
	Line int
}

// String renders the location as file:line.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// AssertionError is returned when an assertion does not hold.
// It is a classification, not a fatal condition: the test keeps running.
type AssertionError struct {
	Kind     Kind   // Comparison family
	Message  string // Formatted diagnostic, identical to the staged message
	Location Location
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s assertion failed at %s", e.Kind, e.Location)
}

// Kind names an assertion family.
type Kind int

// Assertion families.
const (
	KindCompare Kind = iota
	KindMemory
	KindTolerance
	KindString
)

var kindNames = [...]string{
	KindCompare:   "compare",
	KindMemory:    "memory",
	KindTolerance: "tolerance",
	KindString:    "string",
}

// String returns the family name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsAssertionFailure reports whether err is an *AssertionError.
func IsAssertionFailure(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}
