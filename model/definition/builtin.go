package definition

import "github.com/viant/reqflow/model"

var departmentChoices = []string{"admin", "services", "production", "financial"}

// Event builds the client event workflow: customer service raises the
// request, the chain runs senior, finance and administration review and
// returns to senior customer service for final sign-off.  Event records
// carry a monotonic sequence number.
func Event() *Definition {
	return &Definition{
		Type:        model.TypeEvent,
		Sequenced:   true,
		Originators: []model.Role{model.RoleCustomerService},
		Stages: []*StageRule{
			{Stage: model.StagePendingSeniorApproval, Roles: []model.Role{model.RoleSeniorCustomerService}},
			{Stage: model.StagePendingFinanceApproval, Roles: []model.Role{model.RoleFinancialManager}},
			{Stage: model.StagePendingAdminApproval, Roles: []model.Role{model.RoleAdministrationManager}},
			{Stage: model.StagePendingSeniorFinalApproval, Roles: []model.Role{model.RoleSeniorCustomerService}},
		},
		Fields: []*Field{
			{Name: "client_name", Required: true},
			{Name: "event_type", Required: true},
			{Name: "from_date", Kind: KindDate, Required: true},
			{Name: "to_date", Kind: KindDate, Required: true},
			{Name: "attendes", Kind: KindNumber, Required: true},
			{Name: "decorations", Kind: KindFlag, Default: false},
			{Name: "meals", Kind: KindFlag, Default: false},
			{Name: "drinks", Kind: KindFlag, Default: false},
			{Name: "photos_filming", Kind: KindFlag, Default: false},
			{Name: "parties", Kind: KindFlag, Default: false},
			{Name: "expected_budget", Kind: KindNumber, Required: true},
		},
	}
}

// FinancialRequest builds the single-stage departmental funding workflow.
func FinancialRequest() *Definition {
	return &Definition{
		Type:        model.TypeFinancialRequest,
		OwnerMode:   OwnerSelf,
		Originators: []model.Role{model.RoleServiceManager, model.RoleProductionManager, model.RoleAdministrationManager},
		Stages: []*StageRule{
			{Stage: model.StagePendingFinancialApproval, Roles: []model.Role{model.RoleFinancialManager}},
		},
		Fields: []*Field{
			{Name: "requesting_department", Required: true, Choices: departmentChoices},
			{Name: "project_reference", Required: true},
			{Name: "required_amount", Kind: KindNumber, Required: true},
			{Name: "reason", Required: true},
		},
	}
}

// Recruitment builds the staffing workflow: a department manager requests a
// hire, HR screens it, then a manager confirms.  HR may adjust the posting
// text but not the requester or experience requirements.
func Recruitment() *Definition {
	return &Definition{
		Type:        model.TypeRecruitment,
		OwnerMode:   OwnerSelf,
		Originators: []model.Role{model.RoleServiceManager, model.RoleProductionManager},
		Deleters:    []model.Role{model.RoleServiceManager, model.RoleProductionManager},
		Stages: []*StageRule{
			{
				Stage:    model.StagePendingHRApproval,
				Roles:    []model.Role{model.RoleHR},
				Writable: []string{"contract_type", "job_title", "job_description"},
			},
			{
				Stage: model.StagePendingManagerApproval,
				Roles: []model.Role{model.RoleProductionManager, model.RoleServiceManager},
			},
		},
		Fields: []*Field{
			{Name: "contract_type", Choices: []string{"full", "part"}, Default: "full"},
			{Name: "requesting_department", Required: true, Choices: departmentChoices},
			{Name: "years_of_experience", Kind: KindNumber},
			{Name: "job_title", Required: true},
			{Name: "job_description"},
		},
	}
}

// Task builds the subteam task workflow: a manager assigns a task to a
// subteam member, the assignee signs it off, then a manager closes it.
// The subteam stage is owner gated - a member approves only tasks assigned
// to them.
func Task() *Definition {
	return &Definition{
		Type:           model.TypeTask,
		OwnerMode:      OwnerField,
		OwnerFieldName: "assigned_to",
		Originators:    []model.Role{model.RoleServiceManager, model.RoleProductionManager},
		Deleters:       []model.Role{model.RoleServiceManager, model.RoleProductionManager},
		Stages: []*StageRule{
			{
				Stage:      model.StagePendingSubteamApproval,
				Roles:      []model.Role{model.RoleSubteam},
				OwnerGated: true,
			},
			{
				Stage: model.StagePendingManagerApproval,
				Roles: []model.Role{model.RoleServiceManager, model.RoleProductionManager},
			},
		},
		Fields: []*Field{
			{Name: "project_ref", Required: true},
			{Name: "description"},
			{Name: "assigned_to", Kind: KindActor, Required: true},
			{Name: "priority", Choices: []string{"h", "m"}, Default: "h"},
		},
	}
}

// Builtin returns the four built-in workflow definitions.
func Builtin() []*Definition {
	return []*Definition{Event(), FinancialRequest(), Recruitment(), Task()}
}
