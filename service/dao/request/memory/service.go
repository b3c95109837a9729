// Package memory provides the in-memory request DAO used by tests and by
// hosts that do not bring durable storage.
package memory

import (
	"context"
	"sort"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/dao"
	"github.com/viant/reqflow/service/dao/criteria"
	"github.com/viant/reqflow/service/dao/store"
)

// Service is a thread-safe in-memory request store.  All API methods work
// with deep copies to eliminate shared state between callers.
type Service struct {
	store *store.MemoryStore[string, model.Request]
}

var _ dao.Service[string, model.Request] = (*Service)(nil)

// New creates an in-memory request DAO.
func New() *Service {
	return &Service{
		store: store.NewMemoryStore[string, model.Request](func(r *model.Request) string { return r.ID }).
			WithCloner(func(r *model.Request) *model.Request { return r.Clone() }),
	}
}

// Save stores or overwrites a request.
func (s *Service) Save(ctx context.Context, request *model.Request) error {
	if request == nil {
		return dao.ErrNilEntity
	}
	if request.ID == "" {
		return dao.ErrInvalidID
	}
	return s.store.Save(ctx, request)
}

// Load returns a request by id.
func (s *Service) Load(ctx context.Context, id string) (*model.Request, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	return s.store.Load(ctx, id)
}

// Delete removes a request by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	return s.store.Delete(ctx, id)
}

// List returns requests matching the supplied parameters, ordered by
// creation time then id for deterministic output.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.Request, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Request, 0, len(all))
	for _, request := range all {
		if !criteria.Match(request, parameters) {
			continue
		}
		out = append(out, request)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
