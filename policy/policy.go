package policy

import (
	"context"
	"errors"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/model/definition"
)

// ErrPermissionDenied is returned whenever an actor lacks the role or
// ownership required for an operation at the record's current stage.  It is
// surfaced to callers as an authorization failure and never retried.
var ErrPermissionDenied = errors.New("permission denied")

// Operation enumerates the gated request operations.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationView   Operation = "view"
	OperationEdit   Operation = "edit"
	OperationDelete Operation = "delete"
)

// Verdict is the outcome of a policy evaluation: the permission decision
// plus the field-level write mask that applies to the operation.
type Verdict struct {
	Allowed bool

	// Unrestricted marks a superuser verdict: every field, including the
	// engine-owned stage, is writable.
	Unrestricted bool

	// WritableFields lists the business fields the actor may change on an
	// edit.  Empty means the approval decision is the only writable input.
	// Ignored when Unrestricted is set.
	WritableFields []string
}

// FieldWritable reports whether a business field may be changed under this
// verdict.
func (v *Verdict) FieldWritable(name string) bool {
	if v == nil || !v.Allowed {
		return false
	}
	if v.Unrestricted {
		return true
	}
	for _, candidate := range v.WritableFields {
		if candidate == name {
			return true
		}
	}
	return false
}

// Evaluator decides operations against workflow definitions.  It is
// stateless; actor roles are resolved by the role directory before
// evaluation.
type Evaluator struct{}

// New creates a policy evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Authorize evaluates one (actor, operation, request) triple.  request is
// nil for create.  The method never mutates its inputs.
func (e *Evaluator) Authorize(def *definition.Definition, actor *model.Actor, operation Operation, request *model.Request) *Verdict {
	if actor == nil || def == nil {
		return &Verdict{}
	}
	if actor.Superuser {
		return &Verdict{Allowed: true, Unrestricted: true}
	}
	switch operation {
	case OperationCreate:
		if def.CanOriginate(actor) {
			return &Verdict{Allowed: true, WritableFields: fieldNames(def)}
		}
	case OperationView:
		if request == nil {
			return &Verdict{}
		}
		if request.Owner != "" && request.Owner == actor.ID {
			return &Verdict{Allowed: true}
		}
		if rule := def.Rule(request.Stage); rule != nil && rule.Admits(actor, request.Owner) {
			return &Verdict{Allowed: true}
		}
		// Originating roles keep read access through the whole chain unless
		// the definition scopes records to their creator (self ownership).
		if def.OwnerMode != definition.OwnerSelf && def.CanOriginate(actor) {
			return &Verdict{Allowed: true}
		}
	case OperationEdit:
		if request == nil {
			return &Verdict{}
		}
		if rule := def.Rule(request.Stage); rule != nil && rule.Admits(actor, request.Owner) {
			return &Verdict{Allowed: true, WritableFields: append([]string(nil), rule.Writable...)}
		}
	case OperationDelete:
		if def.CanDelete(actor) {
			return &Verdict{Allowed: true}
		}
	}
	return &Verdict{}
}

// CanCreate reports whether the actor may create requests of this type.
func (e *Evaluator) CanCreate(def *definition.Definition, actor *model.Actor) bool {
	return e.Authorize(def, actor, OperationCreate, nil).Allowed
}

// CanView reports whether the actor may see the request at its current stage.
func (e *Evaluator) CanView(def *definition.Definition, actor *model.Actor, request *model.Request) bool {
	return e.Authorize(def, actor, OperationView, request).Allowed
}

// CanEdit reports whether the actor may act on the request at its current
// stage.
func (e *Evaluator) CanEdit(def *definition.Definition, actor *model.Actor, request *model.Request) bool {
	return e.Authorize(def, actor, OperationEdit, request).Allowed
}

// CanDelete reports whether the actor may delete the request.
func (e *Evaluator) CanDelete(def *definition.Definition, actor *model.Actor, request *model.Request) bool {
	return e.Authorize(def, actor, OperationDelete, request).Allowed
}

func fieldNames(def *definition.Definition) []string {
	ret := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		ret = append(ret, field.Name)
	}
	return ret
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithActor embeds the acting identity in ctx.
func WithActor(ctx context.Context, actor *model.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, actor)
}

// ActorFromContext extracts the acting identity, or nil when absent.
func ActorFromContext(ctx context.Context) *model.Actor {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*model.Actor); ok {
		return v
	}
	return nil
}
