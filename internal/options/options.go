// Package options implements the run option table passed down from the command line.
//
// Options arrive as rows of strings where the first element is the option name
// and the remaining elements are its arguments, the way a documentation tool
// hands them to a plugin. Length reports how many elements a row for an option
// spans; Apply folds a table into a configuration.
package options

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/featuredoc/internal/config"
)

// Option names recognized in the run option table.
const (
	BuildTimestamp  = "-build-timestamp"
	AbsoluteVersion = "-absolute-version"
	IncludeHidden   = "-include-hidden"
	TestOnly        = "-test"
)

// ErrUnsupportedOption is returned for option names whose Length is 0.
var ErrUnsupportedOption = errors.New("unsupported option")

// ErrMissingArgument is returned when a row is shorter than its option's Length.
var ErrMissingArgument = errors.New("missing option argument")

// Length returns the number of row elements, including the option name, that
// the option occupies. Unsupported options report 0.
//
// -include-hidden spans two elements even though only its presence matters.
func Length(option string) int {
	switch option {
	case BuildTimestamp, AbsoluteVersion, IncludeHidden:
		return 2
	case TestOnly:
		return 1
	default:
		return 0
	}
}

// Apply sets the run-relevant fields of cfg from table. Later rows win.
func Apply(cfg *config.Config, table [][]string) error {
	for _, row := range table {
		if len(row) == 0 {
			continue
		}
		name := row[0]
		n := Length(name)
		if n == 0 {
			return fmt.Errorf("%w: %s (0 parameters supported)", ErrUnsupportedOption, name)
		}
		if len(row) < n {
			return fmt.Errorf("%w: %s expects %d elements, got %d", ErrMissingArgument, name, n, len(row))
		}
		switch name {
		case BuildTimestamp:
			cfg.BuildTimestamp = row[1]
		case AbsoluteVersion:
			cfg.AbsoluteVersion = row[1]
		case IncludeHidden:
			cfg.IncludeHidden = true
		case TestOnly:
			cfg.TestOnly = true
		}
	}
	return nil
}

// Table builds an option table from already-parsed values. Empty strings and
// false flags are omitted so that Apply leaves the configuration untouched.
func Table(buildTimestamp, absoluteVersion string, includeHidden, testOnly bool) [][]string {
	var table [][]string
	if buildTimestamp != "" {
		table = append(table, []string{BuildTimestamp, buildTimestamp})
	}
	if absoluteVersion != "" {
		table = append(table, []string{AbsoluteVersion, absoluteVersion})
	}
	if includeHidden {
		table = append(table, []string{IncludeHidden, "true"})
	}
	if testOnly {
		table = append(table, []string{TestOnly})
	}
	return table
}
