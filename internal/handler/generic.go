package handler

import (
	"fmt"
	"html/template"
	"path/filepath"
	"reflect"
	"strings"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/feature"
	"git.home.luguber.info/inful/featuredoc/internal/markdown"
	"git.home.luguber.info/inful/featuredoc/internal/workunit"
)

// Template names selected by TemplateName.
const (
	WalkerTemplate     = "walker.template.html"
	AnnotationTemplate = "annotation.template.html"
	GenericTemplate    = "generic.template.html"
)

var filenameReplacer = strings.NewReplacer("/", "_", ".", "_")

// GenericHandler documents any class. It skips interfaces, deprecated
// declarations and, unless the run shows them, hidden ones.
type GenericHandler struct {
	rc config.RunContext
	md *markdown.Renderer
}

// NewGenericHandler returns a handler bound to rc.
func NewGenericHandler(rc config.RunContext, md *markdown.Renderer) *GenericHandler {
	if md == nil {
		md = markdown.NewRenderer()
	}
	return &GenericHandler{rc: rc, md: md}
}

// IncludeInDocs implements workunit.Handler.
func (h *GenericHandler) IncludeInDocs(doc classdoc.ClassDoc, t reflect.Type) bool {
	if doc.Kind == classdoc.KindInterface || (t != nil && t.Kind() == reflect.Interface) {
		return false
	}
	if doc.Deprecated() {
		return false
	}
	if doc.Hidden() && !h.rc.ShowHidden {
		return false
	}
	return true
}

// DestinationFilename implements workunit.Handler.
func (h *GenericHandler) DestinationFilename(doc classdoc.ClassDoc, _ reflect.Type) string {
	return filenameReplacer.Replace(doc.QualifiedName()) + ".html"
}

// TemplateName implements workunit.Handler.
func (h *GenericHandler) TemplateName(_ classdoc.ClassDoc, d feature.Descriptor) string {
	switch d.Category {
	case feature.CategoryWalker:
		return WalkerTemplate
	case feature.CategoryAnnotation:
		return AnnotationTemplate
	default:
		return GenericTemplate
	}
}

// ProcessOne implements workunit.Handler.
func (h *GenericHandler) ProcessOne(root *classdoc.Root, unit *workunit.Unit, all []*workunit.Unit) error {
	doc := unit.ClassDoc
	if root != nil {
		if fresh, ok := root.ClassNamed(doc.QualifiedName()); ok {
			doc = fresh
		}
	}

	description, err := h.md.ToHTML(doc.Doc)
	if err != nil {
		return fmt.Errorf("render description of %s: %w", doc.QualifiedName(), err)
	}

	data := map[string]any{
		"name":          unit.Name,
		"qualifiedName": doc.QualifiedName(),
		"package":       doc.ImportPath,
		"summary":       doc.Summary(),
		// #nosec G203 -- goldmark output with raw HTML disabled
		"description":  template.HTML(description),
		"group":        unit.Group,
		"groupSummary": unit.Feature.Summary,
		"category":     unit.Feature.Category,
		"arguments":    h.arguments(doc),
		"extradocs":    extraDocs(unit.Feature.ExtraDocs, all),
		"related":      related(unit, all),
		"source":       sourceRef(doc),
		"timestamp":    unit.BuildTimestamp,
		"version":      unit.AbsoluteVersion,
	}
	if root != nil {
		data["options"] = root.Options()
	}
	unit.ForTemplate = data
	return nil
}

func (h *GenericHandler) arguments(doc classdoc.ClassDoc) []map[string]any {
	var out []map[string]any
	for _, fa := range doc.Arguments() {
		if fa.Argument.Hidden && !h.rc.ShowHidden {
			continue
		}
		out = append(out, map[string]any{
			"name":     "--" + fa.Argument.FullName,
			"synonyms": shortName(fa.Argument.ShortName),
			"field":    fa.Field.Name,
			"type":     fa.Field.Type,
			"required": fa.Argument.Required,
			"summary":  oneLine(fa.Field.Doc),
		})
	}
	return out
}

func shortName(s string) string {
	if s == "" {
		return "NA"
	}
	return "-" + s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extraDocs links the units documenting types, in declaration order. Types
// without a unit are listed by name only.
func extraDocs(types []reflect.Type, all []*workunit.Unit) []map[string]string {
	out := make([]map[string]string, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		if u := workunit.FindByType(t, all); u != nil {
			out = append(out, map[string]string{"name": u.Name, "filename": u.Filename})
			continue
		}
		out = append(out, map[string]string{"name": t.Name(), "filename": ""})
	}
	return out
}

func related(unit *workunit.Unit, all []*workunit.Unit) []map[string]string {
	var out []map[string]string
	for _, u := range all {
		if u == unit || u.Group != unit.Group {
			continue
		}
		out = append(out, map[string]string{
			"name":     u.Name,
			"filename": u.Filename,
			"summary":  u.ClassDoc.Summary(),
		})
	}
	return out
}

func sourceRef(doc classdoc.ClassDoc) string {
	if doc.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(doc.File), doc.Line)
}
