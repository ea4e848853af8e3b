// Package harness is the in-process test execution engine behind chest.
//
// A Suite catalogs named test functions, runs them in registration order,
// records a pass/fail outcome plus failure diagnostics per test, and hands
// each outcome to a Reporter for rendering.
//
// # Registration
//
// Raw names are turned into display names: a leading "test_" is stripped and
// every remaining underscore becomes a space.
//
//	s := harness.New()
//	defer s.Close()
//	_ = s.RegisterFunc(testAlphaOne, "test_alpha_one") // "alpha one"
//
// # Assertions
//
// Five comparison families operate against the Suite:
//
//   - Compare: ordinal comparison (<, <=, >, >=, ==, !=) over widened numbers
//   - MemEq / ObjectEq: exact byte comparison
//   - Near: absolute tolerance comparison
//   - StrEq: string equality
//
// A failing assertion increments the Suite failure counter by one and stages
// a diagnostic message. It never stops the enclosing test body.
//
//	func testNumbers(s *harness.Suite) {
//	    harness.Compare(s, harness.EQ, 2+2, 4)
//	    harness.Compare(s, harness.LT, -5, 0)
//	}
//
// # Execution
//
// Run invokes the before-all hook, then for each test: before-each, the body,
// outcome classification, reporting, after-each. Finally the after-all hook
// runs. A test passed iff the failure counter did not move while its body ran.
package harness
