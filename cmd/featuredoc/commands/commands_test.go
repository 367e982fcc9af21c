package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
)

const (
	toolkitDir  = "../../../internal/toolkit"
	settingsDir = "../../../settings/helpTemplates"
)

func testGlobal() (*Global, *bytes.Buffer) {
	var out bytes.Buffer
	return &Global{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), Stdout: &out}, &out
}

func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "featuredoc.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func runFlags(t *testing.T) RunFlags {
	return RunFlags{
		Source:          toolkitDir,
		Settings:        settingsDir,
		Output:          filepath.Join(t.TempDir(), "docs"),
		BuildTimestamp:  "2026/10/18 08:00:00",
		AbsoluteVersion: "v1.0.0",
	}
}

func TestGenerateCmd(t *testing.T) {
	global, _ := testGlobal()
	flags := runFlags(t)
	metricsFile := filepath.Join(t.TempDir(), "featuredoc.prom")
	configPath := writeConfig(t, &config.Config{VerifyLinks: true})
	cmd := &GenerateCmd{RunFlags: flags, MetricsFile: metricsFile}

	require.NoError(t, cmd.run(context.Background(), global, configPath))

	assert.FileExists(t, filepath.Join(flags.Output, "index.html"))
	assert.FileExists(t, filepath.Join(flags.Output, "style.css"))
	assert.FileExists(t, filepath.Join(flags.Output, "git_home_luguber_info_inful_featuredoc_internal_toolkit_VCFCodec.html"))
	assert.FileExists(t, metricsFile)

	// #nosec G304 -- test output
	index, err := os.ReadFile(filepath.Join(flags.Output, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "v1.0.0")
	assert.Contains(t, string(index), "2026/10/18 08:00:00")
}

func TestGenerateCmd_MissingExplicitConfig(t *testing.T) {
	global, _ := testGlobal()
	cmd := &GenerateCmd{RunFlags: runFlags(t)}

	err := cmd.run(context.Background(), global, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestGenerateCmd_BadSource(t *testing.T) {
	global, _ := testGlobal()
	flags := runFlags(t)
	flags.Source = filepath.Join(t.TempDir(), "missing")
	cmd := &GenerateCmd{RunFlags: flags}

	err := cmd.run(context.Background(), global, writeConfig(t, &config.Config{}))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategorySource))
}

func TestGenerateCmd_FailureCarriesRunID(t *testing.T) {
	global, _ := testGlobal()
	flags := runFlags(t)
	flags.Settings = t.TempDir()
	cmd := &GenerateCmd{RunFlags: flags}

	err := cmd.run(context.Background(), global, writeConfig(t, &config.Config{}))
	require.Error(t, err)
	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryFileSystem, classified.Category())
	assert.NotEmpty(t, classified.Context()["run_id"])
}

func TestListCmd(t *testing.T) {
	configPath := writeConfig(t, &config.Config{})

	t.Run("yaml", func(t *testing.T) {
		global, out := testGlobal()
		cmd := &ListCmd{RunFlags: runFlags(t), Format: "yaml"}
		cmd.Test = true
		require.NoError(t, cmd.Run(global, &CLI{Config: configPath}))

		var entries []listEntry
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &entries))
		require.Len(t, entries, 3)
		assert.Equal(t, "CommandLine", entries[0].Name)
		assert.Equal(t, "Help Utilities", entries[0].Group)
		assert.Equal(t, "git.home.luguber.info/inful/featuredoc/internal/toolkit.CommandLine", entries[0].Class)
	})

	t.Run("text", func(t *testing.T) {
		global, out := testGlobal()
		cmd := &ListCmd{RunFlags: runFlags(t), Format: "text"}
		require.NoError(t, cmd.Run(global, &CLI{Config: configPath}))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 9)
		assert.True(t, strings.HasPrefix(lines[0], "GROUP"))
		assert.Contains(t, lines[1], "CountReads")
	})
}

func TestListCmd_ReportsRegisteredTypesWithoutSource(t *testing.T) {
	var logs bytes.Buffer
	global := &Global{Logger: slog.New(slog.NewTextHandler(&logs, nil)), Stdout: &bytes.Buffer{}}
	flags := runFlags(t)
	flags.Source = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(flags.Source, "go.mod"), []byte("module example.com/empty\n\ngo 1.24\n"), 0o600))

	cmd := &ListCmd{RunFlags: flags, Format: "text"}
	require.NoError(t, cmd.Run(global, &CLI{Config: writeConfig(t, &config.Config{})}))

	assert.Contains(t, logs.String(), "Registered type has no source documentation")
	assert.Contains(t, logs.String(), "class=git.home.luguber.info/inful/featuredoc/internal/toolkit.CountReads")
	assert.Contains(t, logs.String(), "class=git.home.luguber.info/inful/featuredoc/internal/toolkit.BAMCodec")
}

func TestUndocumented(t *testing.T) {
	reg, err := newRegistry()
	require.NoError(t, err)
	root, err := classdoc.ParseDir(toolkitDir)
	require.NoError(t, err)
	assert.Empty(t, undocumented(reg, root))

	missing := undocumented(reg, classdoc.NewRoot(nil))
	assert.Len(t, missing, len(reg.Names()))
	assert.Contains(t, missing, "git.home.luguber.info/inful/featuredoc/internal/toolkit.BAMCodec")
}

func TestInitCmd(t *testing.T) {
	global, out := testGlobal()
	path := filepath.Join(t.TempDir(), "featuredoc.yaml")

	require.NoError(t, (&InitCmd{}).Run(global, &CLI{Config: path}))
	assert.Contains(t, out.String(), "initialized successfully")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.VerifyLinks)

	err = (&InitCmd{}).Run(global, &CLI{Config: path})
	require.Error(t, err)
	require.NoError(t, (&InitCmd{Force: true}).Run(global, &CLI{Config: path}))
}
