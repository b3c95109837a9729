package definition

import (
	"errors"
	"fmt"

	"github.com/viant/reqflow/model"
)

// ErrUnknownType is returned when no definition is registered for a request
// type.  It signals a configuration error, not user input.
var ErrUnknownType = errors.New("unknown request type")

// Registry is an immutable catalogue of workflow definitions keyed by
// request type.
type Registry struct {
	definitions map[model.Type]*Definition
	types       []model.Type
}

// New creates a registry holding the supplied definitions.  Structurally
// invalid definitions are rejected.
func New(definitions ...*Definition) (*Registry, error) {
	ret := &Registry{definitions: make(map[model.Type]*Definition, len(definitions))}
	for _, def := range definitions {
		if issues := def.Validate(); len(issues) > 0 {
			return nil, fmt.Errorf("invalid definition %v: %w", def.Type, issues[0])
		}
		if _, ok := ret.definitions[def.Type]; ok {
			return nil, fmt.Errorf("duplicate definition for %v", def.Type)
		}
		ret.definitions[def.Type] = def
		ret.types = append(ret.types, def.Type)
	}
	return ret, nil
}

// Default returns a registry with the four built-in workflows.
func Default() *Registry {
	ret, err := New(Builtin()...)
	if err != nil { // built-ins are static, failure is a programming error
		panic(err)
	}
	return ret
}

// Lookup returns the definition for the supplied type.
func (r *Registry) Lookup(t model.Type) (*Definition, error) {
	def, ok := r.definitions[t]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
	return def, nil
}

// Types returns the registered request types in registration order.
func (r *Registry) Types() []model.Type {
	return append([]model.Type(nil), r.types...)
}
