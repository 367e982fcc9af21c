// Package classdoc supplies the universe of documentable declarations.
//
// ParseDir walks a Go source tree and records every named type declaration
// together with its doc comment, its struct fields and any featuredoc
// directives. The resulting Root is the read-only oracle the generator scans:
// it lists all classes, finds a class by qualified name and carries the run
// option table.
//
// Directives are comment lines of the form
//
//	//featuredoc:hidden
//	//featuredoc:key value
//
// placed in the doc comment of a type. They are not part of the rendered
// documentation.
package classdoc
