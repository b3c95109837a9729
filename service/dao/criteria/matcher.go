// Package criteria matches request records against list parameters so that
// every DAO implementation filters identically.
package criteria

import (
	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/dao"
)

// Match reports whether the request satisfies every supplied parameter.
// Unknown parameter names match everything so that storage-specific hints
// can pass through untouched.
func Match(request *model.Request, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		var actual string
		switch parameter.Name {
		case dao.ParamType:
			actual = string(request.Type)
		case dao.ParamStage:
			actual = string(request.Stage)
		case dao.ParamOwner:
			actual = request.Owner
		default:
			continue
		}
		if !matchValue(actual, parameter.Value) {
			return false
		}
	}
	return true
}

func matchValue(actual string, expected interface{}) bool {
	switch value := expected.(type) {
	case string:
		return actual == value
	case []string:
		for _, candidate := range value {
			if actual == candidate {
				return true
			}
		}
		return false
	}
	return true
}
