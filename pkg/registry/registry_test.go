package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"niche-workers/internal/common/errors"
	"niche-workers/internal/common/validation"
	rmn "niche-workers/internal/workers/niche/rank-micro-niches"
	smn "niche-workers/internal/workers/niche/score-micro-niche"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shippedRegistry = "../../configs/activity-registry.json"

func TestShippedRegistry_MatchesWorkers(t *testing.T) {
	reg, err := LoadRegistry(shippedRegistry)
	require.NoError(t, err)

	require.NoError(t, reg.Validate(errors.BPMNErrorCodes()))
	assert.Empty(t, reg.Missing([]string{rmn.TaskType, smn.TaskType}))

	schemas := map[string]*validation.Schema{
		rmn.TaskType: rmn.GetInputSchema(),
		smn.TaskType: smn.GetInputSchema(),
	}
	for taskType, schema := range schemas {
		t.Run(taskType, func(t *testing.T) {
			activity, ok := reg.Find(taskType)
			require.True(t, ok)

			required := activity.RequiredInputs()
			require.NotEmpty(t, required)

			doc := map[string]interface{}{}
			for _, field := range required {
				doc[field] = "x"
			}
			result, err := schema.Validate(doc)
			require.NoError(t, err)
			assert.True(t, result.Valid, result.Summary())

			for _, field := range required {
				partial := map[string]interface{}{}
				for k, v := range doc {
					if k != field {
						partial[k] = v
					}
				}
				result, err := schema.Validate(partial)
				require.NoError(t, err)
				assert.False(t, result.Valid, "worker must require %s", field)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "t1", Timeout: "5s", ErrorCodes: []string{"EMPTY_CATALOG"}},
		{ID: "a", TaskType: "t1", Timeout: "soon", ErrorCodes: []string{"TEAPOT"}},
		{ID: "", TaskType: "t3", Timeout: "1s"},
	}}

	err := reg.Validate([]string{"EMPTY_CATALOG"})
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		`duplicate activity id "a"`,
		`duplicate task type "t1"`,
		`activity "a": timeout`,
		`unknown error code "TEAPOT"`,
		"id and taskType are required",
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %q", want, msg)
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = LoadRegistry(path)
	assert.ErrorContains(t, err, "parse registry")
}

func TestActivity_RequiredInputs(t *testing.T) {
	var a Activity
	require.NoError(t, json.Unmarshal([]byte(`{"inputSchema": {"required": ["a", "b"]}}`), &a))
	assert.Equal(t, []string{"a", "b"}, a.RequiredInputs())
	assert.Nil(t, Activity{}.RequiredInputs())
}
