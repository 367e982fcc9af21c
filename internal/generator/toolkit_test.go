package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/feature"
	"git.home.luguber.info/inful/featuredoc/internal/handler"
	"git.home.luguber.info/inful/featuredoc/internal/metrics"
	"git.home.luguber.info/inful/featuredoc/internal/registry"
	"git.home.luguber.info/inful/featuredoc/internal/render"
	"git.home.luguber.info/inful/featuredoc/internal/toolkit"
)

const settingsDir = "../../settings/helpTemplates"

func toolkitGenerator(t *testing.T, rc config.RunContext, opts ...Option) *Generator {
	t.Helper()
	root, err := classdoc.ParseDir("../toolkit")
	require.NoError(t, err)
	reg := registry.New()
	require.NoError(t, toolkit.Register(reg))

	deps := Deps{
		Resolver:   reg,
		Classifier: feature.NewClassifier(toolkit.DefaultRules()...),
		Handlers:   handler.NewFactory(rc, nil, nil),
		Keepers:    toolkit.TestOnlyKeepers(),
	}
	return New(root, rc, deps, render.NewEngine(rc.SettingsDir), opts...)
}

func toolkitContext(t *testing.T) config.RunContext {
	return config.RunContext{
		BuildTimestamp:  "2026/10/18 09:30:00",
		AbsoluteVersion: "main-0123456789ab",
		DestinationDir:  filepath.Join(t.TempDir(), "featuredocs"),
		SettingsDir:     settingsDir,
		RunID:           "toolkit",
	}
}

func TestToolkit_WorkUnits(t *testing.T) {
	units, err := toolkitGenerator(t, toolkitContext(t)).WorkUnits()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CountReads",
		"CommandLine", "DocumentationTest", "UserError",
		"PrintReads",
		"BEDCodec", "VCFCodec",
		"HomopolymerRun",
	}, names(units))
}

func TestToolkit_WorkUnitsShowHidden(t *testing.T) {
	rc := toolkitContext(t)
	rc.ShowHidden = true
	units, err := toolkitGenerator(t, rc).WorkUnits()
	require.NoError(t, err)
	assert.Equal(t, []string{"CountReads", "ValidateReads"}, names(units)[:2])
}

func TestToolkit_WorkUnitsTestOnly(t *testing.T) {
	rc := toolkitContext(t)
	rc.TestOnly = true
	units, err := toolkitGenerator(t, rc).WorkUnits()
	require.NoError(t, err)
	assert.Equal(t, []string{"CommandLine", "DocumentationTest", "UserError"}, names(units))
}

func TestToolkit_Generate(t *testing.T) {
	rc := toolkitContext(t)
	rec := metrics.NewPrometheusRecorder(nil)
	metricsFile := filepath.Join(t.TempDir(), "featuredoc.prom")
	g := toolkitGenerator(t, rc, WithRecorder(rec), WithMetricsFile(metricsFile), WithLinkVerification(true))

	require.NoError(t, g.Generate(context.Background()))

	read := func(name string) string {
		t.Helper()
		// #nosec G304 -- test output
		b, err := os.ReadFile(filepath.Join(rc.DestinationDir, name))
		require.NoError(t, err)
		return string(b)
	}

	index := read(IndexFilename)
	assert.Contains(t, index, `<h2 id="reference-ordered-data-rod-codecs">Reference Ordered Data (ROD) Codecs</h2>`)
	assert.Contains(t, index, "Codecs for reading reference ordered data such as VCF or BED files")
	assert.Less(t, strings.Index(index, "Diagnostics"), strings.Index(index, "Variant Annotations"))

	count := read("git_home_luguber_info_inful_featuredoc_internal_toolkit_CountReads.html")
	assert.Contains(t, count, "<h1>CountReads</h1>")
	assert.Contains(t, count, "--min-mapping-quality")
	assert.NotContains(t, count, "--include-unmapped")
	assert.Contains(t, count, `href="git_home_luguber_info_inful_featuredoc_internal_toolkit_DocumentationTest.html"`)
	assert.Contains(t, count, "<pre><code>featuredoc generate")

	hrun := read("git_home_luguber_info_inful_featuredoc_internal_toolkit_HomopolymerRun.html")
	assert.Contains(t, hrun, "(annotation)")

	assert.NoFileExists(t, filepath.Join(rc.DestinationDir, "git_home_luguber_info_inful_featuredoc_internal_toolkit_ClipReads.html"))
	assert.NoFileExists(t, filepath.Join(rc.DestinationDir, "git_home_luguber_info_inful_featuredoc_internal_toolkit_FlagStat.html"))

	// #nosec G304 -- test output
	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `featuredoc_unit_outcomes_total{outcome="generated"} 8`)
	assert.Contains(t, string(prom), `featuredoc_unit_outcomes_total{outcome="skipped_disabled"} 1`)
	assert.Contains(t, string(prom), `featuredoc_run_outcomes_total{outcome="success"} 1`)
}
