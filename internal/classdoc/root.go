package classdoc

import (
	"slices"
	"strings"
)

// Root is the universe of class docs for one run.
type Root struct {
	classes []ClassDoc
	byName  map[string]int
	options [][]string
}

// NewRoot builds a Root from already collected class docs. Classes are ordered
// by qualified name so iteration is deterministic; when two entries share a
// qualified name the first one is kept.
func NewRoot(classes []ClassDoc) *Root {
	sorted := slices.Clone(classes)
	slices.SortStableFunc(sorted, func(a, b ClassDoc) int {
		return strings.Compare(a.QualifiedName(), b.QualifiedName())
	})

	r := &Root{byName: make(map[string]int, len(sorted))}
	for _, c := range sorted {
		if _, dup := r.byName[c.QualifiedName()]; dup {
			continue
		}
		r.byName[c.QualifiedName()] = len(r.classes)
		r.classes = append(r.classes, c)
	}
	return r
}

// Classes returns every class in qualified-name order.
func (r *Root) Classes() []ClassDoc {
	return r.classes
}

// ClassNamed looks up a class by qualified name.
func (r *Root) ClassNamed(qualified string) (ClassDoc, bool) {
	i, ok := r.byName[qualified]
	if !ok {
		return ClassDoc{}, false
	}
	return r.classes[i], true
}

// Options returns the run option table handed to the generator.
func (r *Root) Options() [][]string {
	return r.options
}

// WithOptions attaches a run option table and returns r.
func (r *Root) WithOptions(table [][]string) *Root {
	r.options = table
	return r
}
