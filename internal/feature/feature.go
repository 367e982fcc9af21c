// Package feature decides whether a type is documentable and under which group.
//
// A type opts in directly by implementing Documented. Types that cannot carry
// the marker themselves, such as implementations of a third-party interface,
// are matched against an ordered table of fallback rules.
package feature

import (
	"reflect"
	"slices"
)

// Categories understood by the bundled templates. Any other value renders
// through the generic template.
const (
	CategoryWalker     = "walker"
	CategoryAnnotation = "annotation"
	CategoryCodec      = "codec"
	CategoryUtility    = "utility"
)

// Annotation is the marker a type returns from DocumentedFeature. The zero
// value is an enabled feature; set Disabled to keep a type out of the docs.
type Annotation struct {
	GroupName string
	Summary   string
	Disabled  bool
	ExtraDocs []reflect.Type
	Category  string
}

// Documented is implemented by types that carry a feature marker. The method
// is called on a pointer to the zero value, so it must not depend on state.
type Documented interface {
	DocumentedFeature() Annotation
}

// Descriptor is the resolved feature metadata for one type.
type Descriptor struct {
	Target    reflect.Type
	Enabled   bool
	GroupName string
	Summary   string
	ExtraDocs []reflect.Type
	Category  string
}

// FromAnnotation builds a descriptor for t from its marker, verbatim.
func FromAnnotation(t reflect.Type, a Annotation) Descriptor {
	return Descriptor{
		Target:    t,
		Enabled:   !a.Disabled,
		GroupName: a.GroupName,
		Summary:   a.Summary,
		ExtraDocs: slices.Clone(a.ExtraDocs),
		Category:  a.Category,
	}
}

// BoundTo returns a copy of d targeting t.
func (d Descriptor) BoundTo(t reflect.Type) Descriptor {
	d.Target = t
	d.ExtraDocs = slices.Clone(d.ExtraDocs)
	return d
}

// Marker returns the annotation t carries, if any. Both the value and the
// pointer method sets are consulted.
func Marker(t reflect.Type) (Annotation, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return Annotation{}, false
	}
	if d, ok := reflect.New(t).Interface().(Documented); ok {
		return d.DocumentedFeature(), true
	}
	return Annotation{}, false
}
