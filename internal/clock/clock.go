// Package clock centralises the engine's time source so that request
// timestamps can be pinned in tests.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Fix pins the clock to the supplied instant and returns a restore func.
func Fix(instant time.Time) func() {
	previous := NowFunc
	NowFunc = func() time.Time { return instant }
	return func() { NowFunc = previous }
}
