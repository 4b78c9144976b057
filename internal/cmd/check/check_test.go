package check

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/tailwind-shorthand/internal/config"
)

const page = `<html>
<body>
  <div class="mt-4 mr-4 mb-4 ml-4">a</div>
  <div class="flex">b</div>
</body>
</html>
`

func setup(t *testing.T, output string) (*checkOptions, *bytes.Buffer, string) {
	t.Helper()
	for _, v := range []string{"TWS_EXTENSIONS", "TWS_ATTRIBUTES", "TWS_MERGE", "TWS_OUTPUT"} {
		t.Setenv(v, "")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Card.tsx"), []byte(`<p className="w-4 h-4" />`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`class="w-4 h-4"`), 0644))

	buf := new(bytes.Buffer)
	return &checkOptions{
		configPath: filepath.Join(t.TempDir(), "config.yml"),
		output:     output,
		noColor:    true,
		out:        buf,
	}, buf, dir
}

func TestRunCheck_Table(t *testing.T) {
	opts, buf, dir := setup(t, "")

	err := runCheck(context.Background(), opts, []string{dir})
	require.ErrorIs(t, err, ErrFindings)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "SUGGESTION")
	assert.Contains(t, out, filepath.Join(dir, "index.html"))
	assert.Contains(t, out, "m-4")
	assert.Contains(t, out, "size-4")
	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "2 class lists can be shortened")
}

func TestRunCheck_Plain(t *testing.T) {
	opts, buf, dir := setup(t, "plain")

	err := runCheck(context.Background(), opts, []string{filepath.Join(dir, "index.html")})
	require.ErrorIs(t, err, ErrFindings)
	assert.Equal(t, filepath.Join(dir, "index.html")+"\t3\tmt-4 mr-4 mb-4 ml-4\tm-4\n", buf.String())
}

func TestRunCheck_JSON(t *testing.T) {
	opts, buf, dir := setup(t, "json")

	err := runCheck(context.Background(), opts, []string{dir})
	require.ErrorIs(t, err, ErrFindings)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, filepath.Join(dir, "Card.tsx"), got[0]["file"])
	assert.Equal(t, "className", got[0]["attribute"])
	assert.Equal(t, "size-4", got[0]["value"])
	assert.Equal(t, float64(3), got[1]["line"])
	assert.NotContains(t, got[1], "Offset")
}

func TestRunCheck_Clean(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", "No shorthand opportunities found"},
		{"json", "[]"},
		{"plain", ""},
	}

	for _, tt := range tests {
		t.Run("format "+tt.output, func(t *testing.T) {
			opts, buf, _ := setup(t, tt.output)
			clean := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(clean, "a.html"), []byte(`<p class="flex">x</p>`), 0644))

			require.NoError(t, runCheck(context.Background(), opts, []string{clean}))
			if tt.want == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.want)
			}
		})
	}
}

func TestRunCheck_Fix(t *testing.T) {
	opts, buf, dir := setup(t, "")
	opts.fix = true

	require.NoError(t, runCheck(context.Background(), opts, []string{dir}))
	assert.Contains(t, buf.String(), "Rewrote 2 class lists in 2 files")

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<div class="m-4">a</div>`)

	data, err = os.ReadFile(filepath.Join(dir, "Card.tsx"))
	require.NoError(t, err)
	assert.Equal(t, `<p className="size-4" />`, string(data))

	buf.Reset()
	opts.fix = false
	require.NoError(t, runCheck(context.Background(), opts, []string{dir}))
}

func TestRunCheck_FixSummary(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"plain", "fixed\t2\nfiles\t2\nskipped\t0\n"},
		{"json", `"fixed": 2`},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			opts, buf, dir := setup(t, tt.output)
			opts.fix = true

			require.NoError(t, runCheck(context.Background(), opts, []string{dir}))
			if tt.output == "plain" {
				assert.Equal(t, tt.want, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.want)
			}
		})
	}
}

func TestRunCheck_ConfigExtensions(t *testing.T) {
	opts, buf, dir := setup(t, "plain")
	cfg := &config.Config{Extensions: []string{".txt"}}
	require.NoError(t, cfg.Save(opts.configPath))

	err := runCheck(context.Background(), opts, []string{dir})
	require.ErrorIs(t, err, ErrFindings)
	assert.Contains(t, buf.String(), "notes.txt")
	assert.NotContains(t, buf.String(), "index.html")
}

func TestRunCheck_EnvAttributes(t *testing.T) {
	opts, buf, dir := setup(t, "plain")
	t.Setenv("TWS_ATTRIBUTES", "tw")

	require.NoError(t, runCheck(context.Background(), opts, []string{dir}))
	assert.Empty(t, buf.String())
}

func TestRunCheck_MissingPath(t *testing.T) {
	opts, _, dir := setup(t, "")

	err := runCheck(context.Background(), opts, []string{filepath.Join(dir, "missing")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFindings)
	assert.Contains(t, err.Error(), "failed to scan")
}

func TestNewCmdCheck(t *testing.T) {
	cmd := NewCmdCheck()
	assert.Equal(t, "check [paths...]", cmd.Use)
	for _, flag := range []string{"fix", "merge", "jobs"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}
