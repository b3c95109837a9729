package definition

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/reqflow/model"
)

const definitionsYAML = `
definitions:
  - type: task
    ownerMode: field
    ownerField: assigned_to
    originators: [service_manager]
    deleters: [service_manager]
    stages:
      - stage: pending_subteam_approval
        roles: [subteam]
        ownerGated: true
      - stage: pending_manager_approval
        roles: [service_manager, production_manager]
    fields:
      - name: project_ref
        required: true
      - name: assigned_to
        kind: actor
        required: true
      - name: priority
        choices: [h, m]
        default: h
`

func TestDecodeYAML(t *testing.T) {
	registry, err := DecodeYAML([]byte(definitionsYAML))
	require.NoError(t, err)

	def, err := registry.Lookup(model.TypeTask)
	require.NoError(t, err)
	assert.EqualValues(t, model.StagePendingSubteamApproval, def.Initial())
	assert.True(t, def.Stages[0].OwnerGated)

	next, ok := def.Next(model.StagePendingManagerApproval)
	require.True(t, ok)
	assert.EqualValues(t, model.StageApproved, next)
}

func TestDecodeYAML_Invalid(t *testing.T) {
	type testCase struct {
		name    string
		encoded string
	}

	tests := []testCase{
		{
			name:    "malformed yaml",
			encoded: "definitions: [",
		},
		{
			name: "unknown type",
			encoded: `
definitions:
  - type: purchase_order
    stages:
      - stage: pending_review
        roles: [service_manager]
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeYAML([]byte(tc.encoded))
			assert.Error(t, err)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	location := filepath.Join(t.TempDir(), "definitions.yaml")
	require.NoError(t, os.WriteFile(location, []byte(definitionsYAML), 0o644))

	loader := NewLoader()
	registry, err := loader.Load(context.Background(), location)
	require.NoError(t, err)
	assert.EqualValues(t, []model.Type{model.TypeTask}, registry.Types())

	_, err = loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
