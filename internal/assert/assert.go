// Package assert provides lightweight invariant checks for the core.
// Violations indicate a programming error, not a runtime/protocol condition,
// so they panic rather than return an error.
package assert

import "fmt"

// Assert panics with the formatted message if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

// Never panics unconditionally. Used after calls that should not return,
// such as a fatal logger call.
func Never() {
	panic("assertion failed: unreachable code was reached")
}
