package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hyperui/internal/routes"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses args like main does and runs the selected command.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("hyperui"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	err = kctx.Run(&Globals{Ctx: context.Background(), Logger: zerolog.Nop(), Stdout: &out}, &cli)
	return out.String(), err
}

func TestCLI_ParsesGlobalsAndEnvironment(t *testing.T) {
	t.Setenv("HYPERUI_JOBS", "3")
	var cli CLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	kctx, err := parser.Parse([]string{"--unsafe", "--editml", "-c", "custom.yaml", "gen", "--clean"})
	require.NoError(t, err)

	assert.Equal(t, "gen", kctx.Command())
	assert.Equal(t, "custom.yaml", cli.Config)
	assert.True(t, cli.Unsafe)
	assert.True(t, cli.EditML)
	assert.True(t, cli.Gen.Clean)
	assert.Equal(t, 3, cli.Gen.Jobs)
}

func TestCLI_NewSiteThenGenAndRoutes(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "new", "site", ".")
	require.NoError(t, err)

	out, err := run(t, "new", "component", "alerts", "toast")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "data", "components", "alerts-toast.mdx"), strings.TrimSpace(out))

	out, err = run(t, "routes")
	require.NoError(t, err)
	assert.Equal(t, "alerts/toast\nbuttons/rounded\n", out)

	out, err = run(t, "routes", "--json")
	require.NoError(t, err)
	var rs []routes.Route
	require.NoError(t, json.Unmarshal([]byte(out), &rs))
	assert.Equal(t, []routes.Route{{Category: "alerts", Slug: "toast"}, {Category: "buttons", Slug: "rounded"}}, rs)

	_, err = run(t, "gen", "--clean", "-j", "2")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("public", "components", "alerts", "toast.html"))
	assert.FileExists(t, filepath.Join("public", "routes.json"))
}

func TestCLI_GenFailsWhenARouteFails(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "new", "site", ".")
	require.NoError(t, err)
	broken := filepath.Join("src", "data", "components", "forms-broken.mdx")
	require.NoError(t, os.WriteFile(broken, []byte("---\ntitle: Broken\n---\n<List />\n"), 0o644))

	_, err = run(t, "gen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 routes failed")
	assert.FileExists(t, filepath.Join("public", "components", "buttons", "rounded.html"))
}
