// Package directory defines the role directory contract: the engine's view
// of the organization's identity store.  The engine only ever asks "does
// actor A hold role R" and "who is actor A"; group management itself stays
// with the identity provider.
package directory

import (
	"context"
	"errors"

	"github.com/viant/reqflow/model"
)

// ErrUnknownActor is returned when the identity store has no record of the
// supplied actor.
var ErrUnknownActor = errors.New("directory: unknown actor")

// Service answers role membership questions against an identity store.
type Service interface {
	// Holds reports whether the actor holds the supplied role.
	Holds(ctx context.Context, actorID string, role model.Role) (bool, error)

	// Lookup resolves an actor's identity: roles and superuser flag.
	Lookup(ctx context.Context, actorID string) (*model.Actor, error)
}
