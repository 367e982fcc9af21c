package classdoc

import (
	"go/doc"
	"reflect"
	"strings"
)

// Kind classifies the declaration behind a ClassDoc.
type Kind string

const (
	KindStruct    Kind = "struct"
	KindInterface Kind = "interface"
	KindFunc      Kind = "func"
	KindOther     Kind = "other"
)

// DirectivePrefix marks featuredoc directives inside doc comments.
const DirectivePrefix = "//featuredoc:"

// DirectiveHidden hides a class unless hidden features are requested.
const DirectiveHidden = "hidden"

// ClassDoc describes one type declaration found in source.
type ClassDoc struct {
	Name       string            // Simple type name
	Package    string            // Package name as declared
	ImportPath string            // Import path of the declaring package
	Doc        string            // Doc comment text, directives removed
	Kind       Kind              // Underlying declaration kind
	Fields     []FieldDoc        // Struct fields in declaration order
	Directives map[string]string // featuredoc directives keyed by name
	File       string            // Source file path
	Line       int               // Line of the type name
}

// FieldDoc describes a struct field.
type FieldDoc struct {
	Name     string
	Type     string
	Doc      string
	Tag      string // Raw struct tag without backquotes
	Embedded bool
}

// Argument is the command-line option a field declares through its arg tag:
//
//	Input string `arg:"input,short=I,required"`
type Argument struct {
	FullName  string
	ShortName string
	Required  bool
	Hidden    bool
}

// QualifiedName returns importpath.Name, which matches reflect's
// Type.PkgPath() + "." + Type.Name() for the declared type.
func (c ClassDoc) QualifiedName() string {
	if c.ImportPath == "" {
		return c.Name
	}
	return c.ImportPath + "." + c.Name
}

func (c ClassDoc) String() string { return c.QualifiedName() }

// Summary returns the first sentence of the doc comment.
func (c ClassDoc) Summary() string {
	var p doc.Package
	return p.Synopsis(c.Doc)
}

// Deprecated reports whether the doc comment carries a "Deprecated:" paragraph.
func (c ClassDoc) Deprecated() bool {
	for _, para := range strings.Split(c.Doc, "\n\n") {
		if strings.HasPrefix(strings.TrimSpace(para), "Deprecated:") {
			return true
		}
	}
	return false
}

// Hidden reports whether the class carries the hidden directive.
func (c ClassDoc) Hidden() bool {
	_, ok := c.Directive(DirectiveHidden)
	return ok
}

// Directive returns the value of a featuredoc directive.
func (c ClassDoc) Directive(name string) (string, bool) {
	v, ok := c.Directives[name]
	return v, ok
}

// Arguments returns the fields that declare command-line options, in
// declaration order.
func (c ClassDoc) Arguments() []FieldArgument {
	var out []FieldArgument
	for _, f := range c.Fields {
		if arg, ok := f.Argument(); ok {
			out = append(out, FieldArgument{Field: f, Argument: arg})
		}
	}
	return out
}

// FieldArgument pairs a field with the option it declares.
type FieldArgument struct {
	Field    FieldDoc
	Argument Argument
}

// Argument parses the field's arg tag.
func (f FieldDoc) Argument() (Argument, bool) {
	raw, ok := reflect.StructTag(f.Tag).Lookup("arg")
	if !ok || raw == "-" {
		return Argument{}, false
	}
	parts := strings.Split(raw, ",")
	arg := Argument{FullName: strings.TrimSpace(parts[0])}
	if arg.FullName == "" {
		arg.FullName = strings.ToLower(f.Name)
	}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		switch {
		case p == "required":
			arg.Required = true
		case p == "hidden":
			arg.Hidden = true
		case strings.HasPrefix(p, "short="):
			arg.ShortName = strings.TrimPrefix(p, "short=")
		}
	}
	return arg, true
}
