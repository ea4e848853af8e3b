// Command chest-demo runs a small suite exercising every assertion family.
//
//	chest-demo                 # run once
//	chest-demo list            # print test names
//	chest-demo run --measure   # with timing
//	chest-demo run -n 5        # repeat and report flaky tests
package main

import (
	"math"
	"os"

	"github.com/roach88/chest/internal/cli"
	"github.com/roach88/chest/internal/harness"
)

type point struct {
	X, Y int32
}

var setups int

func testNumericAssertions(s *harness.Suite) {
	harness.Compare(s, harness.EQ, 2+2, 4)
	harness.Compare(s, harness.LT, -5, 0)
	harness.Compare(s, harness.GE, uint8(200), int64(-1))
	tenth := 0.1
	harness.Compare(s, harness.NE, tenth+0.2, 0.3)
}

func testFloatTolerance(s *harness.Suite) {
	harness.Near(s, math.Pi, 355.0/113.0, 1e-6)
	harness.Near(s, float32(1.5), 1.5, 0)
}

func testMemoryRegions(s *harness.Suite) {
	a := []byte("chest harness")
	b := []byte("chest harness")
	harness.MemEq(s, a, b, len(a))
	harness.ObjectEq(s, &point{1, 2}, &point{1, 2})
}

func testStrings(s *harness.Suite) {
	harness.StrEq(s, "abc", "abc")
}

func testHooksRan(s *harness.Suite) {
	harness.Compare(s, harness.EQ, setups, 1)
}

func main() {
	os.Exit(cli.Main("chest-demo", func(s *harness.Suite) error {
		setups = 0
		if err := s.SetBeforeAll(harness.Func(func(*harness.Suite) { setups++ })); err != nil {
			return err
		}

		tests := []struct {
			fn   harness.Func
			name string
		}{
			{testNumericAssertions, "test_numeric_assertions"},
			{testFloatTolerance, "test_float_tolerance"},
			{testMemoryRegions, "test_memory_regions"},
			{testStrings, "test_strings"},
			{testHooksRan, "test_hooks_ran"},
		}
		for _, tt := range tests {
			if err := s.Register(tt.fn, tt.name); err != nil {
				return err
			}
		}
		return nil
	}))
}
