// Package memory provides an in-memory role directory used by tests and by
// embedded deployments without an external identity store.
package memory

import (
	"context"
	"sync"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/directory"
)

// Service is a thread-safe in-memory role directory.
type Service struct {
	mu     sync.RWMutex
	actors map[string]*model.Actor
}

var _ directory.Service = (*Service)(nil)

// New creates an empty directory.
func New() *Service {
	return &Service{actors: map[string]*model.Actor{}}
}

// Grant adds roles to an actor, creating the actor when absent.
func (s *Service) Grant(actorID string, roles ...model.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor := s.ensure(actorID)
	for _, role := range roles {
		if !actor.HasRole(role) {
			actor.Roles = append(actor.Roles, role)
		}
	}
}

// Revoke removes roles from an actor.
func (s *Service) Revoke(actorID string, roles ...model.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor, ok := s.actors[actorID]
	if !ok {
		return
	}
	for _, role := range roles {
		for i, held := range actor.Roles {
			if held == role {
				actor.Roles = append(actor.Roles[:i], actor.Roles[i+1:]...)
				break
			}
		}
	}
}

// Promote marks an actor as superuser.
func (s *Service) Promote(actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(actorID).Superuser = true
}

func (s *Service) ensure(actorID string) *model.Actor {
	actor, ok := s.actors[actorID]
	if !ok {
		actor = &model.Actor{ID: actorID}
		s.actors[actorID] = actor
	}
	return actor
}

// Holds reports whether the actor holds the supplied role.
func (s *Service) Holds(_ context.Context, actorID string, role model.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actor, ok := s.actors[actorID]
	if !ok {
		return false, nil
	}
	return actor.HasRole(role), nil
}

// Lookup resolves an actor's identity.
func (s *Service) Lookup(_ context.Context, actorID string) (*model.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actor, ok := s.actors[actorID]
	if !ok {
		return nil, directory.ErrUnknownActor
	}
	ret := *actor
	ret.Roles = append([]model.Role(nil), actor.Roles...)
	return &ret, nil
}
