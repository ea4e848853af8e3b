package harness

import (
	"fmt"
	"math"
	"math/big"
)

// CmpOp is an ordinal comparison operator.
type CmpOp int

// Comparison operators.
const (
	LT CmpOp = iota
	LE
	GT
	GE
	EQ
	NE
)

type opInfo struct {
	symbol string
	phrase string // default English descriptive phrase
}

var opTable = [...]opInfo{
	LT: {"<", "LESS THAN"},
	LE: {"<=", "LESS THAN OR EQUAL TO"},
	GT: {">", "GREATER THAN"},
	GE: {">=", "GREATER THAN OR EQUAL TO"},
	EQ: {"==", "EQUAL"},
	NE: {"!=", "NOT EQUAL"},
}

// Ops lists every operator in declaration order.
var Ops = []CmpOp{LT, LE, GT, GE, EQ, NE}

// Valid reports whether op is one of the six known operators.
func (op CmpOp) Valid() bool {
	return op >= LT && op <= NE
}

// Symbol returns the Go operator spelling, e.g. "<=".
func (op CmpOp) Symbol() string {
	if !op.Valid() {
		return "?"
	}
	return opTable[op].symbol
}

// Phrase returns the default descriptive phrase, e.g. "LESS THAN".
// Unknown operators have an empty phrase.
func (op CmpOp) Phrase() string {
	if !op.Valid() {
		return ""
	}
	return opTable[op].phrase
}

// String implements fmt.Stringer.
func (op CmpOp) String() string {
	if !op.Valid() {
		return fmt.Sprintf("CmpOp(%d)", int(op))
	}
	return op.Symbol()
}

// ParseCmpOp resolves an operator from its symbol or its short name
// ("lt", "LE", ...).
func ParseCmpOp(s string) (CmpOp, error) {
	switch s {
	case "<", "lt", "LT":
		return LT, nil
	case "<=", "le", "LE":
		return LE, nil
	case ">", "gt", "GT":
		return GT, nil
	case ">=", "ge", "GE":
		return GE, nil
	case "==", "eq", "EQ":
		return EQ, nil
	case "!=", "ne", "NE":
		return NE, nil
	}
	return 0, fmt.Errorf("unknown comparison operator %q", s)
}

// Number is the set of operand types accepted by Compare and Near.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// widePrec holds any int64, uint64 or float64 exactly.
const widePrec = 128

// wide is a widened operand. NaN cannot be held by big.Float, so it is
// carried as a flag.
type wide struct {
	v   *big.Float
	nan bool
}

func widen[T Number](x T) wide {
	f := new(big.Float).SetPrec(widePrec)
	switch {
	case isFloat[T]():
		return widenFloat(f, float64(x))
	case isSigned[T]():
		f.SetInt64(int64(x))
	default:
		f.SetUint64(uint64(x))
	}
	return wide{v: f}
}

func widenFloat(f *big.Float, v float64) wide {
	if math.IsNaN(v) {
		return wide{v: f, nan: true}
	}
	f.SetFloat64(v)
	return wide{v: f}
}

// isFloat detects float kinds, named ones included: only floats keep a
// fractional part through conversion.
func isFloat[T Number]() bool {
	var one T = 1
	return T(0.5*float64(one)) != 0
}

// isSigned detects signed integer kinds: only they go below zero.
func isSigned[T Number]() bool {
	var zero T
	return zero-1 < zero
}

// holds evaluates op between a and b. Any comparison involving NaN is false
// except NE, matching IEEE 754.
func holds(op CmpOp, a, b wide) bool {
	if a.nan || b.nan {
		return op == NE
	}
	c := a.v.Cmp(b.v)
	switch op {
	case LT:
		return c < 0
	case LE:
		return c <= 0
	case GT:
		return c > 0
	case GE:
		return c >= 0
	case EQ:
		return c == 0
	case NE:
		return c != 0
	default:
		return false
	}
}

// within reports |a-b| <= tol.
func within(a, b, tol wide) bool {
	if a.nan || b.nan || tol.nan {
		return false
	}
	if a.v.IsInf() || b.v.IsInf() {
		// Inf-Inf is undefined for big.Float; equal infinities are identical.
		return a.v.Cmp(b.v) == 0 && tol.v.Sign() >= 0
	}
	d := new(big.Float).SetPrec(widePrec).Sub(a.v, b.v)
	d.Abs(d)
	return d.Cmp(tol.v) <= 0
}

// formatWide renders a widened value with six significant digits.
func formatWide(r wide) string {
	if r.nan {
		return "nan"
	}
	if r.v.IsInf() {
		if r.v.Sign() < 0 {
			return "-inf"
		}
		return "inf"
	}
	f, _ := r.v.Float64()
	return fmt.Sprintf("%.6g", f)
}
