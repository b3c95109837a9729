// Package sequence assigns the monotonically increasing record numbers
// carried by sequenced request types.  The default allocator serializes
// assignment behind a mutex seeded from storage; the scan allocator
// reproduces the legacy read-max pattern and is kept only for parity with
// systems that still rely on it.
package sequence

import (
	"context"

	"github.com/viant/reqflow/model"
)

// Service allocates the next sequence number for a request type.
type Service interface {
	Next(ctx context.Context, t model.Type) (int64, error)
}
