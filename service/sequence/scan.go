package sequence

import (
	"context"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/dao"
)

// Scan reproduces the legacy assignment: read the maximum existing number
// and add one, with no guard between read and write.  Under concurrent
// creation two saves can observe the same maximum and assign duplicate
// numbers - use Counter unless byte-for-byte legacy behaviour is required.
type Scan struct {
	dao dao.Service[string, model.Request]
}

var _ Service = (*Scan)(nil)

// NewScan creates a scan allocator over the supplied DAO.
func NewScan(requestDAO dao.Service[string, model.Request]) *Scan {
	return &Scan{dao: requestDAO}
}

// Next returns max(existing)+1, or 1 when no record carries a number yet.
func (s *Scan) Next(ctx context.Context, t model.Type) (int64, error) {
	max, err := maxAssigned(ctx, s.dao, t)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
