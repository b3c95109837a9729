// Package transition implements the approval state machine.  Given a
// request's current stage and a requested action it computes the next stage
// deterministically from the workflow definition - no clock, no randomness.
package transition

import (
	"errors"
	"fmt"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/model/definition"
)

// ErrInvalidState is returned when a record's stored stage is not defined
// for its workflow type.  It signals a corrupted record or a definition
// drift and must propagate loudly.
var ErrInvalidState = errors.New("invalid request state")

// Service computes stage transitions.
type Service struct{}

// New creates a transition service.
func New() *Service {
	return &Service{}
}

// Next computes the stage a request moves to.
//
// A reject lands on the rejected terminal stage from any non-terminal
// stage.  An advance moves one stage forward along the definition's stage
// order.  Terminal stages never change.  fresh marks a first-ever save:
// creation counts as an implicit no-op, the record stays in its current
// (initial) stage.
func (s *Service) Next(def *definition.Definition, current model.Stage, action model.Action, fresh bool) (model.Stage, error) {
	if current.IsTerminal() {
		return current, nil
	}
	switch action {
	case model.ActionReject:
		return model.StageRejected, nil
	case model.ActionAdvance:
		if fresh {
			return current, nil
		}
		next, ok := def.Next(current)
		if !ok {
			return "", fmt.Errorf("%w: stage %q is not defined for type %v", ErrInvalidState, current, def.Type)
		}
		return next, nil
	}
	return "", fmt.Errorf("unsupported action %q", action)
}
