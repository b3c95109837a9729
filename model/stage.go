package model

// Stage is a named position in a request type's approval sequence.
type Stage string

// Terminal stages shared by every workflow type.
const (
	StageApproved Stage = "approved"
	StageRejected Stage = "rejected"
)

// Non-terminal stages used by the built-in workflow definitions.
const (
	StagePendingSeniorApproval      Stage = "pending_senior_approval"
	StagePendingFinanceApproval     Stage = "pending_finance_approval"
	StagePendingAdminApproval       Stage = "pending_admin_approval"
	StagePendingSeniorFinalApproval Stage = "pending_senior_final_approval"
	StagePendingFinancialApproval   Stage = "pending_financial_approval"
	StagePendingHRApproval          Stage = "pending_hr_approval"
	StagePendingManagerApproval     Stage = "pending_manager_approval"
	StagePendingSubteamApproval     Stage = "pending_subteam_approval"
)

// IsTerminal reports whether the stage accepts no further transitions.
func (s Stage) IsTerminal() bool {
	return s == StageApproved || s == StageRejected
}

// Action is a transition request evaluated by the transition engine.
type Action string

const (
	// ActionAdvance moves a request one stage forward along its stage order.
	ActionAdvance Action = "advance"
	// ActionReject moves a request to the rejected terminal stage.
	ActionReject Action = "reject"
)

// Decision is the approval choice a reviewer submits on an edit.  An empty
// decision means a plain advance.
type Decision string

const (
	DecisionApprove Decision = "approved"
	DecisionReject  Decision = "rejected"
)
