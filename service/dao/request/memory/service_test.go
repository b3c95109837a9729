package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reqflow/model"
	"github.com/viant/reqflow/service/dao"
)

func newRequest(id string, t model.Type, stage model.Stage, owner string, createdAt time.Time) *model.Request {
	return &model.Request{
		ID:        id,
		Type:      t,
		Stage:     stage,
		Owner:     owner,
		Fields:    map[string]interface{}{"project_ref": "PRJ-" + id},
		CreatedAt: createdAt,
	}
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	service := New()

	request := newRequest("r1", model.TypeTask, model.StagePendingSubteamApproval, "bob", time.Now())
	require.NoError(t, service.Save(ctx, request))

	loaded, err := service.Load(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, request, loaded)

	// stored state is isolated from caller mutation
	loaded.Stage = model.StageRejected
	loaded.Fields["project_ref"] = "tampered"
	again, err := service.Load(ctx, "r1")
	require.NoError(t, err)
	assert.EqualValues(t, model.StagePendingSubteamApproval, again.Stage)
	assert.EqualValues(t, "PRJ-r1", again.Fields["project_ref"])

	require.NoError(t, service.Delete(ctx, "r1"))
	_, err = service.Load(ctx, "r1")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func TestService_InvalidInput(t *testing.T) {
	ctx := context.Background()
	service := New()

	assert.ErrorIs(t, service.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, service.Save(ctx, &model.Request{}), dao.ErrInvalidID)
	_, err := service.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
	assert.ErrorIs(t, service.Delete(ctx, "ghost"), dao.ErrNotFound)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	service := New()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []*model.Request{
		newRequest("a", model.TypeTask, model.StagePendingSubteamApproval, "bob", base),
		newRequest("b", model.TypeTask, model.StagePendingManagerApproval, "eve", base.Add(time.Minute)),
		newRequest("c", model.TypeRecruitment, model.StagePendingHRApproval, "eve", base.Add(2*time.Minute)),
	}
	for _, record := range records {
		require.NoError(t, service.Save(ctx, record))
	}

	type testCase struct {
		name       string
		parameters []*dao.Parameter
		expected   []string
	}

	tests := []testCase{
		{
			name:     "all records ordered by creation",
			expected: []string{"a", "b", "c"},
		},
		{
			name:       "by type",
			parameters: []*dao.Parameter{dao.NewParameter(dao.ParamType, string(model.TypeTask))},
			expected:   []string{"a", "b"},
		},
		{
			name: "by stage set",
			parameters: []*dao.Parameter{
				dao.NewParameter(dao.ParamStage,
					string(model.StagePendingSubteamApproval),
					string(model.StagePendingHRApproval)),
			},
			expected: []string{"a", "c"},
		},
		{
			name:       "by owner",
			parameters: []*dao.Parameter{dao.NewParameter(dao.ParamOwner, "eve")},
			expected:   []string{"b", "c"},
		},
		{
			name: "conjunction",
			parameters: []*dao.Parameter{
				dao.NewParameter(dao.ParamType, string(model.TypeTask)),
				dao.NewParameter(dao.ParamOwner, "eve"),
			},
			expected: []string{"b"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			listed, err := service.List(ctx, tc.parameters...)
			require.NoError(t, err)
			var actual []string
			for _, request := range listed {
				actual = append(actual, request.ID)
			}
			assert.EqualValues(t, tc.expected, actual)
		})
	}
}
