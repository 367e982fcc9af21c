// Package workunit defines the per-class unit of documentation generation and
// the total order used for output files and the index.
package workunit

import (
	"reflect"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/feature"
)

// Handler renders one kind of documented class. A handler is created per unit
// and owns the scratch state it fills while processing that unit.
type Handler interface {
	// IncludeInDocs is the handler-specific inclusion predicate.
	IncludeInDocs(doc classdoc.ClassDoc, t reflect.Type) bool
	// DestinationFilename is the output path relative to the destination directory.
	DestinationFilename(doc classdoc.ClassDoc, t reflect.Type) string
	// TemplateName selects the template used for the unit.
	TemplateName(doc classdoc.ClassDoc, d feature.Descriptor) string
	// ProcessOne fills unit.ForTemplate. all is the complete ordered unit set.
	ProcessOne(root *classdoc.Root, unit *Unit, all []*Unit) error
}

// Unit is one documentable class for one run.
type Unit struct {
	Name            string
	Filename        string
	Group           string
	Feature         feature.Descriptor
	Handler         Handler
	ClassDoc        classdoc.ClassDoc
	Type            reflect.Type
	BuildTimestamp  string
	AbsoluteVersion string

	// ForTemplate is written once by Handler.ProcessOne.
	ForTemplate map[string]any
}

// IndexDataMap is the summary of the unit listed in the index.
func (u *Unit) IndexDataMap() map[string]string {
	return map[string]string{
		"name":     u.Name,
		"summary":  u.ClassDoc.Summary(),
		"filename": u.Filename,
		"group":    u.Group,
	}
}

func (u *Unit) String() string {
	return u.Group + "/" + u.Name
}

// FindByType returns the unit documenting t, if any.
func FindByType(t reflect.Type, all []*Unit) *Unit {
	if t == nil {
		return nil
	}
	for _, u := range all {
		if u.Type == t {
			return u
		}
	}
	return nil
}
