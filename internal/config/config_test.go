package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danmuck/chaosctl/internal/testutil/testlog"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "controls.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullSettings(t *testing.T) {
	testlog.Start(t)
	path := writeSettings(t, `
[configuration]
endpoint = "http://x"
timeout = 30

[secrets.db]
user = "x"
token = "t0"

[[controls]]
name = "tracing"

[controls.provider]
module = "chaosctl/modules/audit"
secrets = ["db"]

[controls.provider.arguments]
dsn = "postgres://${secrets/db/user}@${configuration/endpoint}"
`)

	s, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "http://x", s.Configuration["endpoint"])
	require.EqualValues(t, 30, s.Configuration["timeout"])
	require.Equal(t, "x", s.Secrets["db"]["user"])

	require.Len(t, s.Controls, 1)
	ctl := s.Controls[0]
	require.Equal(t, "tracing", ctl.Name)
	require.NotNil(t, ctl.Provider)
	require.Equal(t, "chaosctl/modules/audit", ctl.Provider.Module)
	require.Equal(t, []string{"db"}, ctl.Provider.Secrets)
	require.Equal(t,
		"postgres://${secrets/db/user}@${configuration/endpoint}",
		ctl.Provider.Arguments["dsn"])
}

func TestLoadMissingFile(t *testing.T) {
	testlog.Start(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestValidateRejectsBrokenControls(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "missing name",
			content: `
[[controls]]
[controls.provider]
module = "pkg.mod"
`,
			want: "missing name",
		},
		{
			name: "missing provider",
			content: `
[[controls]]
name = "c1"
`,
			want: "missing provider",
		},
		{
			name: "missing module",
			content: `
[[controls]]
name = "c1"
[controls.provider]
arguments = {}
`,
			want: "missing provider module",
		},
		{
			name: "duplicate name",
			content: `
[[controls]]
name = "c1"
[controls.provider]
module = "pkg.mod"

[[controls]]
name = "c1"
[controls.provider]
module = "pkg.other"
`,
			want: "duplicates name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSettings(t, tc.content)
			_, err := Load(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	testlog.Start(t)
	path := writeSettings(t, "")

	s, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, s.Controls)
	require.Empty(t, s.Configuration)
	require.Empty(t, s.Secrets)
}
