// Package generator drives a documentation run.
//
// A run turns the class universe into an ordered set of work units, renders
// one page per unit and then an index page grouping them. Runs are
// sequential and stop at the first fatal error; classes that cannot be
// resolved, classified or included are skipped and logged.
package generator
