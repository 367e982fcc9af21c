package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "page.html", `<h1>{{ .name | titleCase }}</h1><p>{{ .summary }}</p>{{ .body }}<a id="{{ anchor .group }}">{{ .group | upper }}</a>`)

	e := NewEngine(dir)
	var sb strings.Builder
	err := e.Render(&sb, "page.html", map[string]any{
		"name":    "count reads",
		"summary": "<b>escaped</b>",
		"body":    "plain",
		"group":   "Quality Control & Diagnostics",
	})
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "<h1>Count Reads</h1>")
	assert.Contains(t, out, "&lt;b&gt;escaped&lt;/b&gt;")
	assert.Contains(t, out, `id="quality-control-diagnostics"`)
	assert.Contains(t, out, "QUALITY CONTROL &amp; DIAGNOSTICS")
}

func TestTemplate_Cached(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "a.html", "one")
	e := NewEngine(dir)

	first, err := e.Template("a.html")
	require.NoError(t, err)
	writeTemplate(t, dir, "a.html", "two")
	second, err := e.Template("a.html")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestTemplate_Errors(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "broken.html", "{{ .x ")
	writeTemplate(t, dir, "exec.html", "{{ index .list 5 }}")
	e := NewEngine(dir)

	_, err := e.Template("missing.html")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = e.Template("../escape.html")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	_, err = e.Template("broken.html")
	assert.ErrorIs(t, err, ErrTemplateParse)

	var sb strings.Builder
	err = e.Render(&sb, "exec.html", map[string]any{"list": []int{1}})
	assert.ErrorIs(t, err, ErrTemplateExec)
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "page.html", "hello {{ .who }}")
	writeTemplate(t, dir, "bad.html", "{{ index .list 5 }}")
	e := NewEngine(dir)

	out := filepath.Join(t.TempDir(), "nested", "page.html")
	require.NoError(t, e.RenderFile(out, "page.html", map[string]any{"who": "world"}))
	// #nosec G304 -- test output
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(b))

	failed := filepath.Join(t.TempDir(), "bad.html")
	require.Error(t, e.RenderFile(failed, "bad.html", map[string]any{"list": []int{}}))
	_, err = os.Stat(failed)
	assert.True(t, os.IsNotExist(err))
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, "reference-ordered-data-rod-codecs", Anchor("Reference ordered data (ROD) codecs"))
	assert.Equal(t, "", Anchor("  "))
	assert.Equal(t, "walkers", Anchor("Walkers!"))
}
