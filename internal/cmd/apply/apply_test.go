package apply

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/tailwind-shorthand/internal/config"
)

func newTestOptions(t *testing.T, output string) (*applyOptions, *bytes.Buffer) {
	t.Helper()
	for _, v := range []string{"TWS_EXTENSIONS", "TWS_ATTRIBUTES", "TWS_MERGE", "TWS_OUTPUT"} {
		t.Setenv(v, "")
	}
	buf := new(bytes.Buffer)
	return &applyOptions{
		configPath: filepath.Join(t.TempDir(), "config.yml"),
		output:     output,
		noColor:    true,
		out:        buf,
	}, buf
}

func TestRunApply_Plain(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"margin", []string{"mt-4", "mr-4", "mb-4", "ml-4"}, "m-4"},
		{"joined args", []string{"flex w-8", "h-8"}, "flex size-8"},
		{"no change", []string{"flex", "items-center"}, "flex items-center"},
		{"redundant", []string{"p-2 pl-2"}, "p-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, buf := newTestOptions(t, "plain")
			require.NoError(t, runApply(opts, tt.args))
			assert.Equal(t, tt.want+"\n", buf.String())
		})
	}
}

func TestRunApply_Table(t *testing.T) {
	opts, buf := newTestOptions(t, "")
	require.NoError(t, runApply(opts, []string{"mt-4 mr-4 mb-4 ml-4"}))

	out := buf.String()
	assert.Contains(t, out, "- mt-4 mr-4 mb-4 ml-4\n+ m-4\n")
	assert.Contains(t, out, "SHORTHAND")
	assert.Contains(t, out, "mt-4, mr-4, mb-4, ml-4")
}

func TestRunApply_TableUnchanged(t *testing.T) {
	opts, buf := newTestOptions(t, "table")
	require.NoError(t, runApply(opts, []string{"flex"}))
	assert.Equal(t, "flex\n", buf.String())
}

func TestRunApply_JSON(t *testing.T) {
	opts, buf := newTestOptions(t, "json")
	require.NoError(t, runApply(opts, []string{"w-4", "h-4"}))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "w-4 h-4", got["input"])
	assert.Equal(t, true, got["applied"])
	assert.Equal(t, "size-4", got["value"])
	assert.Len(t, got["transformations"], 1)
}

func TestRunApply_Stdin(t *testing.T) {
	opts, buf := newTestOptions(t, "json")
	opts.in = strings.NewReader("w-4 h-4\n\n  flex  \npx-2 py-2\n")
	require.NoError(t, runApply(opts, nil))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "size-4", got[0]["value"])
	assert.Equal(t, "flex", got[1]["value"])
	assert.Equal(t, false, got[1]["applied"])
	assert.Equal(t, "p-2", got[2]["value"])
}

func TestRunApply_EmptyInput(t *testing.T) {
	opts, _ := newTestOptions(t, "plain")
	opts.in = strings.NewReader("\n  \n")

	err := runApply(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no classes given")
}

func TestRunApply_Merge(t *testing.T) {
	opts, buf := newTestOptions(t, "plain")
	opts.merge = true
	require.NoError(t, runApply(opts, []string{"p-2 p-4 w-4 h-4"}))
	assert.Equal(t, "p-4 size-4\n", buf.String())
}

func TestRunApply_ConfigVocabulary(t *testing.T) {
	opts, buf := newTestOptions(t, "")
	cfg := &config.Config{
		Vocabulary:   map[string]string{"w": "width", "h": "height"},
		OutputFormat: "plain",
	}
	require.NoError(t, cfg.Save(opts.configPath))

	require.NoError(t, runApply(opts, []string{"width-2 height-2"}))
	assert.Equal(t, "size-2\n", buf.String())
}

func TestRunApply_InvalidConfig(t *testing.T) {
	opts, _ := newTestOptions(t, "plain")
	require.NoError(t, os.WriteFile(opts.configPath, []byte("vocabulary:\n  w: \"md:w\"\n"), 0644))

	err := runApply(opts, []string{"w-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestRunApply_InvalidOutput(t *testing.T) {
	opts, _ := newTestOptions(t, "yaml")

	err := runApply(opts, []string{"w-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestNewCmdApply(t *testing.T) {
	cmd := NewCmdApply()
	assert.Equal(t, "apply [classes...]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("merge"))
}
