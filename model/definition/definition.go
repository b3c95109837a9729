package definition

import (
	"fmt"

	"github.com/viant/reqflow/model"
)

// OwnerMode controls how a definition assigns record ownership on create.
type OwnerMode string

const (
	// OwnerNone leaves ownership unset.
	OwnerNone OwnerMode = ""
	// OwnerSelf assigns the acting actor as owner.
	OwnerSelf OwnerMode = "self"
	// OwnerField reads the owner from a business field (e.g. assignee).
	OwnerField OwnerMode = "field"
)

// StageRule binds one non-terminal stage to the role entitled to act on it.
type StageRule struct {
	Stage model.Stage `json:"stage" yaml:"stage"`

	// Roles entitled to advance or reject a request sitting at Stage.
	Roles []model.Role `json:"roles" yaml:"roles"`

	// OwnerGated additionally requires the acting reviewer to own the
	// record (e.g. a subteam member approves only tasks assigned to them).
	OwnerGated bool `json:"ownerGated,omitempty" yaml:"ownerGated,omitempty"`

	// Writable lists business fields the stage's reviewer may change on
	// top of the approval decision.  Empty means decision only.
	Writable []string `json:"writable,omitempty" yaml:"writable,omitempty"`
}

// HasRole reports whether the rule admits the supplied role.
func (r *StageRule) HasRole(role model.Role) bool {
	for _, candidate := range r.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// Admits reports whether the actor satisfies the rule: it holds one of the
// rule's roles and, for owner-gated stages, owns the record.
func (r *StageRule) Admits(actor *model.Actor, owner string) bool {
	if actor == nil {
		return false
	}
	if !actor.HasAnyRole(r.Roles...) {
		return false
	}
	if r.OwnerGated && owner != actor.ID {
		return false
	}
	return true
}

// Definition describes one approval workflow.
type Definition struct {
	Type model.Type `json:"type" yaml:"type"`

	// Stages is the ordered list of non-terminal stages; the last stage
	// advances into model.StageApproved.
	Stages []*StageRule `json:"stages" yaml:"stages"`

	// Originators are the roles permitted to create requests of this type.
	// Empty means any authenticated actor.
	Originators []model.Role `json:"originators,omitempty" yaml:"originators,omitempty"`

	// Deleters are the roles permitted to delete requests of this type.
	// Reviewers never appear here; empty means superuser only.
	Deleters []model.Role `json:"deleters,omitempty" yaml:"deleters,omitempty"`

	// Sequenced enables monotonic sequence-number assignment on first save.
	Sequenced bool `json:"sequenced,omitempty" yaml:"sequenced,omitempty"`

	// OwnerMode and OwnerFieldName control ownership assignment on create.
	OwnerMode      OwnerMode `json:"ownerMode,omitempty" yaml:"ownerMode,omitempty"`
	OwnerFieldName string    `json:"ownerField,omitempty" yaml:"ownerField,omitempty"`

	// Fields is the business field schema used for validation and masks.
	Fields []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Initial returns the stage a freshly created request starts in.
func (d *Definition) Initial() model.Stage {
	if len(d.Stages) == 0 {
		return model.StageApproved
	}
	return d.Stages[0].Stage
}

// Next returns the stage following current in the stage order.  The last
// non-terminal stage advances into approved.  The second result is false
// when current is not a defined non-terminal stage of this workflow.
func (d *Definition) Next(current model.Stage) (model.Stage, bool) {
	for i, rule := range d.Stages {
		if rule.Stage != current {
			continue
		}
		if i+1 < len(d.Stages) {
			return d.Stages[i+1].Stage, true
		}
		return model.StageApproved, true
	}
	return "", false
}

// Rule returns the stage rule for the supplied stage, or nil for terminal
// or unknown stages.
func (d *Definition) Rule(stage model.Stage) *StageRule {
	for _, rule := range d.Stages {
		if rule.Stage == stage {
			return rule
		}
	}
	return nil
}

// RolesAt returns the roles entitled to act at the supplied stage.
func (d *Definition) RolesAt(stage model.Stage) ([]model.Role, bool) {
	if rule := d.Rule(stage); rule != nil {
		return rule.Roles, true
	}
	return nil, false
}

// StagesFor returns every stage the supplied role acts on.  The result may
// hold more than one stage: the senior customer service role reviews the
// event chain at both ends.
func (d *Definition) StagesFor(role model.Role) []model.Stage {
	var ret []model.Stage
	for _, rule := range d.Stages {
		if rule.HasRole(role) {
			ret = append(ret, rule.Stage)
		}
	}
	return ret
}

// Field returns the schema of a named business field, or nil when the
// definition does not declare it.
func (d *Definition) Field(name string) *Field {
	for _, field := range d.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// CanOriginate reports whether the actor holds a role permitted to create
// requests of this type.
func (d *Definition) CanOriginate(actor *model.Actor) bool {
	if actor == nil {
		return false
	}
	if actor.Superuser {
		return true
	}
	if len(d.Originators) == 0 {
		return actor.ID != ""
	}
	return actor.HasAnyRole(d.Originators...)
}

// CanDelete reports whether the actor holds a role permitted to delete
// requests of this type.
func (d *Definition) CanDelete(actor *model.Actor) bool {
	if actor == nil {
		return false
	}
	if actor.Superuser {
		return true
	}
	return actor.HasAnyRole(d.Deleters...)
}

// Validate performs structural validation of the definition.  The returned
// slice is empty when the definition is sound.
func (d *Definition) Validate() []error {
	var issues []error
	if !d.Type.IsValid() {
		issues = append(issues, fmt.Errorf("unknown request type %q", d.Type))
	}
	if len(d.Stages) == 0 {
		issues = append(issues, fmt.Errorf("definition %v has no stages", d.Type))
	}
	seen := map[model.Stage]bool{}
	for _, rule := range d.Stages {
		if rule.Stage.IsTerminal() {
			issues = append(issues, fmt.Errorf("definition %v lists terminal stage %v", d.Type, rule.Stage))
		}
		if seen[rule.Stage] {
			issues = append(issues, fmt.Errorf("definition %v duplicates stage %v", d.Type, rule.Stage))
		}
		seen[rule.Stage] = true
		if len(rule.Roles) == 0 {
			issues = append(issues, fmt.Errorf("definition %v stage %v has no role", d.Type, rule.Stage))
		}
		for _, name := range rule.Writable {
			if d.Field(name) == nil {
				issues = append(issues, fmt.Errorf("definition %v stage %v allows unknown field %q", d.Type, rule.Stage, name))
			}
		}
	}
	if d.OwnerMode == OwnerField {
		if d.OwnerFieldName == "" {
			issues = append(issues, fmt.Errorf("definition %v uses field ownership without a field name", d.Type))
		} else if d.Field(d.OwnerFieldName) == nil {
			issues = append(issues, fmt.Errorf("definition %v owner field %q is not declared", d.Type, d.OwnerFieldName))
		}
	}
	fields := map[string]bool{}
	for _, field := range d.Fields {
		if fields[field.Name] {
			issues = append(issues, fmt.Errorf("definition %v duplicates field %q", d.Type, field.Name))
		}
		fields[field.Name] = true
	}
	return issues
}
