// Package render wraps html/template as the template engine for generated pages.
//
// Templates are loaded by file name from a single settings directory and
// cached for the lifetime of the Engine. Every template sees the sprig
// function library plus a small set of featuredoc helpers.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrTemplateNotFound indicates no template file exists under the settings directory.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrTemplateParse indicates a template file exists but does not parse.
	ErrTemplateParse = errors.New("template parse failed")
	// ErrTemplateExec indicates executing a template against its data failed.
	ErrTemplateExec = errors.New("template execution failed")
	// ErrOutputWrite indicates the rendered page could not be written.
	ErrOutputWrite = errors.New("output write failed")
)

// Engine loads and renders templates from one directory.
type Engine struct {
	dir   string
	funcs template.FuncMap

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEngine creates an engine loading templates from dir.
func NewEngine(dir string) *Engine {
	funcs := sprig.FuncMap()
	funcs["titleCase"] = titleCase
	funcs["anchor"] = Anchor
	return &Engine{dir: dir, funcs: funcs, cache: make(map[string]*template.Template)}
}

// Template returns the parsed template name, loading it on first use.
func (e *Engine) Template(name string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.cache[name]; ok {
		return t, nil
	}
	if name == "" || filepath.IsAbs(name) || strings.Contains(filepath.ToSlash(name), "..") {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	path := filepath.Join(e.dir, name)
	// #nosec G304 -- name is confined to the settings directory above
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	t, err := template.New(name).Funcs(e.funcs).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateParse, name, err)
	}
	e.cache[name] = t
	return t, nil
}

// Render executes template name with data into w.
func (e *Engine) Render(w io.Writer, name string, data any) error {
	t, err := e.Template(name)
	if err != nil {
		return err
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplateExec, name, err)
	}
	return nil
}

// RenderFile renders template name into path. The page is rendered fully in
// memory first so a failing template never leaves a truncated file behind.
func (e *Engine) RenderFile(path, name string, data any) error {
	var buf bytes.Buffer
	if err := e.Render(&buf, name, data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	// #nosec G306 -- generated documentation is public content
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	return nil
}

// titleCase builds a new Caser per call; Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// Anchor turns a group name into an HTML id.
func Anchor(s string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
