// Package leaktest provides goroutine leak detection for tests that start
// background loops (hubs, worker pools, schedulers).
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// Check records the current goroutine count and returns a function that
// fails the test if the count has grown by more than tolerance when called.
// Typical use:
//
//	defer leaktest.Check(t, 0)()
func Check(t testing.TB, tolerance int) func() {
	t.Helper()

	// Let goroutines started by previous tests settle first
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)
	before := runtime.NumGoroutine()

	return func() {
		t.Helper()

		// Give stopping goroutines time to exit
		runtime.Gosched()
		time.Sleep(50 * time.Millisecond)
		runtime.GC()
		time.Sleep(50 * time.Millisecond)

		after := runtime.NumGoroutine()
		if leaked := after - before; leaked > tolerance {
			t.Errorf("potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
				before, after, leaked, tolerance)
		}
	}
}
