package harness

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"runtime"
	"unsafe"
)

// Every assertion returns nil when it holds, an *AssertionError when it does
// not, and ErrInternal when called without a Suite. A failure increments the
// Suite failure counter by exactly one and stages its diagnostic; it never
// stops the caller.

// Compare asserts that a op b holds after widening both operands.
func Compare[A, B Number](s *Suite, op CmpOp, a A, b B) error {
	return CompareAt(s, callerLocation(1), op, a, b)
}

// CompareAt is Compare with an explicit source location.
func CompareAt[A, B Number](s *Suite, loc Location, op CmpOp, a A, b B) error {
	if s == nil {
		return ErrInternal
	}
	wa, wb := widen(a), widen(b)
	if holds(op, wa, wb) {
		return nil
	}
	msg := fmt.Sprintf("  '%s' is not %s '%s'. (%s)\n",
		formatWide(wa), s.phrases.Phrase(op), formatWide(wb), loc)
	return s.fail(KindCompare, loc, msg)
}

// MemEq asserts that the first n bytes of a and b are identical.
// A region longer than either slice cannot match.
func MemEq(s *Suite, a, b []byte, n int) error {
	return MemEqAt(s, callerLocation(1), a, b, n)
}

// MemEqAt is MemEq with an explicit source location.
func MemEqAt(s *Suite, loc Location, a, b []byte, n int) error {
	if s == nil || n < 0 {
		return ErrInternal
	}
	if n <= len(a) && n <= len(b) && wordsEqual(a[:n], b[:n]) {
		return nil
	}
	expr := fmt.Sprintf("%s == %s", previewBytes(a, n), previewBytes(b, n))
	return s.fail(KindMemory, loc, memMessage(expr, loc))
}

// ObjectEq asserts that *x and *y have identical memory representations.
// Padding bytes take part in the comparison.
func ObjectEq[T any](s *Suite, x, y *T) error {
	loc := callerLocation(1)
	if s == nil || x == nil || y == nil {
		return ErrInternal
	}
	n := int(unsafe.Sizeof(*x))
	ax := unsafe.Slice((*byte)(unsafe.Pointer(x)), n)
	by := unsafe.Slice((*byte)(unsafe.Pointer(y)), n)
	if wordsEqual(ax, by) {
		return nil
	}
	expr := fmt.Sprintf("%v == %v", *x, *y)
	return s.fail(KindMemory, loc, memMessage(expr, loc))
}

// Near asserts |a-b| <= tol.
func Near[A, B, T Number](s *Suite, a A, b B, tol T) error {
	return NearAt(s, callerLocation(1), a, b, tol)
}

// NearAt is Near with an explicit source location.
func NearAt[A, B, T Number](s *Suite, loc Location, a A, b B, tol T) error {
	if s == nil {
		return ErrInternal
	}
	wa, wb, wt := widen(a), widen(b), widen(tol)
	if within(wa, wb, wt) {
		return nil
	}
	msg := fmt.Sprintf("  %s is not within threshold of %s (expected %s). (%s)\n",
		formatWide(wa), formatWide(wt), formatWide(wb), loc)
	return s.fail(KindTolerance, loc, msg)
}

// StrEq asserts that a and b are byte-for-byte equal.
func StrEq(s *Suite, a, b string) error {
	return StrEqAt(s, callerLocation(1), a, b)
}

// StrEqAt is StrEq with an explicit source location.
func StrEqAt(s *Suite, loc Location, a, b string) error {
	if s == nil {
		return ErrInternal
	}
	if a == b {
		return nil
	}
	msg := fmt.Sprintf("  '%s' and '%s' are not EQUAL. (%s)\n", a, b, loc)
	return s.fail(KindString, loc, msg)
}

// fail counts one assertion failure and stages its message.
func (s *Suite) fail(kind Kind, loc Location, msg string) error {
	s.failures++
	s.pending = append(s.pending, msg)
	s.logger.Debug("assertion failed",
		"kind", kind.String(),
		"location", loc.String(),
		"test", s.current,
		"failures", s.failures,
	)
	return &AssertionError{Kind: kind, Message: msg, Location: loc}
}

func memMessage(expr string, loc Location) string {
	return fmt.Sprintf("  %s is false. (%s)\n", expr, loc)
}

// wordSize is the chunk width of wordsEqual.
const wordSize = 8

// wordsEqual compares two equal-length slices a machine word at a time and
// finishes byte-wise. Its result is that of bytes.Equal.
func wordsEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	i := 0
	for ; i+wordSize <= len(a); i += wordSize {
		if binary.LittleEndian.Uint64(a[i:]) != binary.LittleEndian.Uint64(b[i:]) {
			return false
		}
	}
	for ; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// previewLimit caps the number of bytes shown in memory diagnostics.
const previewLimit = 16

func previewBytes(p []byte, n int) string {
	if n > len(p) {
		return fmt.Sprintf("[% x](len %d < %d)", truncate(p), len(p), n)
	}
	return fmt.Sprintf("[% x]", truncate(p[:n]))
}

func truncate(p []byte) []byte {
	if len(p) > previewLimit {
		return p[:previewLimit]
	}
	return p
}

// callerLocation reports the file and line skip frames above its caller.
func callerLocation(skip int) Location {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "???", Line: 0}
	}
	return Location{File: filepath.Base(file), Line: line}
}
