package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCommand_Text(t *testing.T) {
	for _, container := range []string{"vector", "array"} {
		t.Run(container, func(t *testing.T) {
			var out bytes.Buffer
			cmd := NewRootCommand()
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{"demo", "--container", container})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, out.String(), "base snapshot:      [1 2 3]")
			assert.Contains(t, out.String(), "extended snapshot:  [1 2 3 4]")
		})
	}
}

func TestDemoCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"demo", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string     `json:"status"`
		Data   DemoResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []int{1, 2, 3}, resp.Data.Base)
	assert.Equal(t, []int{1, 2, 3, 4}, resp.Data.Extended)
	assert.Equal(t, []int{9, 2, 3}, resp.Data.FacadeA)
	assert.Equal(t, []int{7, 2, 3}, resp.Data.FacadeB)
}

func TestDemoCommand_UnknownContainer(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"demo", "--container", "deque"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
