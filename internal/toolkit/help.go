package toolkit

import (
	"fmt"

	"git.home.luguber.info/inful/featuredoc/internal/feature"
)

// GroupHelp holds the pages kept in test-only runs.
const GroupHelp = "Help Utilities"

// DocumentationTest is a fixture page for checking documentation output.
type DocumentationTest struct {
	// An input file.
	Input string `arg:"input,short=I,required"`
	// A value nobody sets.
	Unused int `arg:"unused"`
}

// DocumentedFeature implements feature.Documented.
func (DocumentationTest) DocumentedFeature() feature.Annotation {
	return feature.Annotation{
		GroupName: GroupHelp,
		Summary:   "General information about the toolkit",
		Category:  feature.CategoryUtility,
	}
}

// CommandLine describes the arguments every toolkit command accepts.
type CommandLine struct {
	// Reference sequence file.
	Reference string `arg:"reference,short=R"`
	// Intervals to operate over.
	Intervals []string `arg:"intervals,short=L"`
	// Print help and exit.
	Help bool `arg:"help,short=h"`
}

// DocumentedFeature implements feature.Documented.
func (CommandLine) DocumentedFeature() feature.Annotation {
	return feature.Annotation{GroupName: GroupHelp, Category: feature.CategoryUtility}
}

// UserError is an error caused by bad input rather than a toolkit bug.
type UserError struct {
	Msg string
}

func (e UserError) Error() string { return fmt.Sprintf("invalid input: %s", e.Msg) }

// DocumentedFeature implements feature.Documented.
func (UserError) DocumentedFeature() feature.Annotation {
	return feature.Annotation{GroupName: GroupHelp, Category: feature.CategoryUtility}
}
