package reqflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/model/definition"
	"github.com/viant/reqflow/policy"
	"github.com/viant/reqflow/service/coordinator"
)

func newTestService(t *testing.T, options ...Option) *Service {
	t.Helper()
	srv, err := New(options...)
	require.NoError(t, err)
	members := srv.Members()
	require.NotNil(t, members)
	members.Grant("cs", model.RoleCustomerService)
	members.Grant("senior", model.RoleSeniorCustomerService)
	members.Grant("finance", model.RoleFinancialManager)
	members.Grant("admin", model.RoleAdministrationManager)
	members.Grant("hr", model.RoleHR)
	members.Grant("mgr", model.RoleServiceManager)
	members.Grant("bob", model.RoleSubteam)
	return srv
}

func eventFields() map[string]interface{} {
	return map[string]interface{}{
		"client_name":     "Acme",
		"event_type":      "launch",
		"from_date":       "2026-09-01",
		"to_date":         "2026-09-02",
		"attendes":        120,
		"expected_budget": 50000,
	}
}

func actor(id string) *model.Actor {
	return &model.Actor{ID: id}
}

func TestService_EventApprovalChain(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	request, err := srv.Create(ctx, model.TypeEvent, actor("cs"), eventFields())
	require.NoError(t, err)
	assert.Equal(t, model.StagePendingSeniorApproval, request.Stage)
	assert.Equal(t, int64(1), request.SequenceNumber)

	chain := []struct {
		reviewer string
		next     model.Stage
	}{
		{reviewer: "senior", next: model.StagePendingFinanceApproval},
		{reviewer: "finance", next: model.StagePendingAdminApproval},
		{reviewer: "admin", next: model.StagePendingSeniorFinalApproval},
		{reviewer: "senior", next: model.StageApproved},
	}
	for _, step := range chain {
		request, err = srv.Update(ctx, model.TypeEvent, request.ID, actor(step.reviewer), nil, model.DecisionApprove)
		require.NoError(t, err, "reviewer %v", step.reviewer)
		assert.Equal(t, step.next, request.Stage, "reviewer %v", step.reviewer)
	}
	assert.True(t, request.Stage.IsTerminal())

	consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	topics := map[string]int{}
	for i := 0; i < 6; i++ {
		message, err := srv.Events().Consume(consumeCtx)
		require.NoError(t, err)
		topics[message.T().Topic]++
		require.NoError(t, message.Ack())
	}
	assert.Equal(t, 1, topics[coordinator.TopicRequestCreated])
	assert.Equal(t, 4, topics[coordinator.TopicRequestUpdated])
	assert.Equal(t, 1, topics[coordinator.TopicRequestApproved])
}

func TestService_Rejection(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	request, err := srv.Create(ctx, model.TypeEvent, actor("cs"), eventFields())
	require.NoError(t, err)

	request, err = srv.Update(ctx, model.TypeEvent, request.ID, actor("senior"), nil, model.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, model.StageRejected, request.Stage)

	_, err = srv.Update(ctx, model.TypeEvent, request.ID, actor("finance"), nil, model.DecisionApprove)
	assert.Error(t, err)
}

func TestService_TaskOwnerGating(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	request, err := srv.Create(ctx, model.TypeTask, actor("mgr"), map[string]interface{}{
		"project_ref": "PRJ-7",
		"assigned_to": "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StagePendingSubteamApproval, request.Stage)
	assert.Equal(t, "bob", request.Owner)

	ok, err := srv.Can(ctx, model.TypeTask, actor("bob"), policy.OperationEdit, request)
	require.NoError(t, err)
	assert.True(t, ok)

	request, err = srv.Update(ctx, model.TypeTask, request.ID, actor("bob"), nil, model.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StagePendingManagerApproval, request.Stage)

	request, err = srv.Update(ctx, model.TypeTask, request.ID, actor("mgr"), nil, model.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, model.StageApproved, request.Stage)
}

func TestService_CreatorKeepsReadAccess(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	created, err := srv.Create(ctx, model.TypeEvent, actor("cs"), eventFields())
	require.NoError(t, err)

	got, err := srv.Get(ctx, model.TypeEvent, created.ID, actor("cs"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	listed, err := srv.List(ctx, model.TypeEvent, actor("cs"))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// read access survives every hand-off in the chain
	_, err = srv.Update(ctx, model.TypeEvent, created.ID, actor("senior"), nil, model.DecisionApprove)
	require.NoError(t, err)
	_, err = srv.Get(ctx, model.TypeEvent, created.ID, actor("cs"))
	require.NoError(t, err)

	// a manager keeps sight of a task while it waits on the assignee
	task, err := srv.Create(ctx, model.TypeTask, actor("mgr"), map[string]interface{}{
		"project_ref": "PRJ-9",
		"assigned_to": "bob",
	})
	require.NoError(t, err)
	_, err = srv.Get(ctx, model.TypeTask, task.ID, actor("mgr"))
	require.NoError(t, err)
}

func TestService_ListVisibility(t *testing.T) {
	srv := newTestService(t)
	ctx := context.Background()

	_, err := srv.Create(ctx, model.TypeEvent, actor("cs"), eventFields())
	require.NoError(t, err)

	visible, err := srv.List(ctx, model.TypeEvent, actor("senior"))
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	hidden, err := srv.List(ctx, model.TypeEvent, actor("bob"))
	require.NoError(t, err)
	assert.Empty(t, hidden)
}

func TestService_CustomDefinitions(t *testing.T) {
	custom := definition.Task()
	srv, err := New(WithDefinitions(custom))
	require.NoError(t, err)
	assert.Equal(t, []model.Type{model.TypeTask}, srv.Registry().Types())
	_, err = srv.Registry().Lookup(model.TypeEvent)
	assert.ErrorIs(t, err, definition.ErrUnknownType)
}

func TestService_DefinitionsURL(t *testing.T) {
	URL := filepath.Join(t.TempDir(), "definitions.yaml")
	document := `
definitions:
  - type: financial_request
    ownerMode: self
    originators: [service_manager]
    stages:
      - stage: pending_financial_approval
        roles: [financial_manager]
    fields:
      - name: reason
        required: true
`
	require.NoError(t, os.WriteFile(URL, []byte(document), 0o644))

	srv, err := New(WithConfig(&Config{DefinitionsURL: URL}))
	require.NoError(t, err)
	assert.Equal(t, []model.Type{model.TypeFinancialRequest}, srv.Registry().Types())
}

func TestService_InvalidConfig(t *testing.T) {
	_, err := New(WithConfig(&Config{Sequence: SequenceConfig{Strategy: "random"}}))
	assert.Error(t, err)
}

func TestService_ScanStrategy(t *testing.T) {
	srv, err := New(WithConfig(&Config{Sequence: SequenceConfig{Strategy: SequenceScan}}))
	require.NoError(t, err)
	srv.Members().Grant("cs", model.RoleCustomerService)

	ctx := context.Background()
	first, err := srv.Create(ctx, model.TypeEvent, actor("cs"), eventFields())
	require.NoError(t, err)
	second, err := srv.Create(ctx, model.TypeEvent, actor("cs"), eventFields())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.SequenceNumber)
	assert.Equal(t, int64(2), second.SequenceNumber)
}
