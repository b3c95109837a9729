package model

// Type identifies a request workflow type.
type Type string

// Built-in request types.
const (
	TypeEvent            Type = "event"
	TypeFinancialRequest Type = "financial_request"
	TypeRecruitment      Type = "recruitment"
	TypeTask             Type = "task"
)

// Types returns all built-in request types in a stable order.
func Types() []Type {
	return []Type{TypeEvent, TypeFinancialRequest, TypeRecruitment, TypeTask}
}

// IsValid reports whether t is one of the built-in request types.
func (t Type) IsValid() bool {
	switch t {
	case TypeEvent, TypeFinancialRequest, TypeRecruitment, TypeTask:
		return true
	}
	return false
}
