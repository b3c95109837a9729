package sequence

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/dao"
)

// Counter is the safe allocator: per type it seeds from the maximum
// sequence number already in storage, then increments under a lock so that
// concurrent creations never observe the same value.
type Counter struct {
	dao    dao.Service[string, model.Request]
	mu     sync.Mutex
	next   map[model.Type]int64
	seeded map[model.Type]bool
}

var _ Service = (*Counter)(nil)

// NewCounter creates a counter allocator seeded from the supplied DAO.
func NewCounter(requestDAO dao.Service[string, model.Request]) *Counter {
	return &Counter{
		dao:    requestDAO,
		next:   map[model.Type]int64{},
		seeded: map[model.Type]bool{},
	}
}

// Next returns the next sequence number for the supplied type.
func (c *Counter) Next(ctx context.Context, t model.Type) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.seeded[t] {
		max, err := maxAssigned(ctx, c.dao, t)
		if err != nil {
			return 0, fmt.Errorf("failed to seed %v sequence: %w", t, err)
		}
		c.next[t] = max
		c.seeded[t] = true
	}
	c.next[t]++
	return c.next[t], nil
}

func maxAssigned(ctx context.Context, requestDAO dao.Service[string, model.Request], t model.Type) (int64, error) {
	records, err := requestDAO.List(ctx, dao.NewParameter(dao.ParamType, string(t)))
	if err != nil {
		return 0, err
	}
	var max int64
	for _, record := range records {
		if record.SequenceNumber > max {
			max = record.SequenceNumber
		}
	}
	return max, nil
}
