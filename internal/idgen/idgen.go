package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// New returns a new globally unique identifier as string. It is implemented
// as a thin wrapper so tests can stub it.

var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }

// Sequential replaces the generator with a deterministic prefix-N sequence
// and returns a restore func. Intended for tests.
func Sequential(prefix string) func() {
	previous := NewFunc
	var counter int64
	NewFunc = func() string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddInt64(&counter, 1))
	}
	return func() { NewFunc = previous }
}
