package dao

// Names of list parameters understood by the request DAO implementations.
const (
	ParamType  = "Type"
	ParamStage = "Stage"
	ParamOwner = "Owner"
)

// Parameter narrows a List call to records matching a named attribute.
// Value may be a single string or a string slice (match any).
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a list parameter.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
