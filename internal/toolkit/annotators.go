package toolkit

import "git.home.luguber.info/inful/featuredoc/internal/feature"

// GroupAnnotations is the group of variant annotators.
const GroupAnnotations = "Variant Annotations"

// HomopolymerRun reports the longest run of a single base adjacent to the
// variant site in the reference context.
type HomopolymerRun struct{}

// DocumentedFeature implements feature.Documented.
func (HomopolymerRun) DocumentedFeature() feature.Annotation {
	return feature.Annotation{
		GroupName: GroupAnnotations,
		Summary:   "Annotations available to variant callers",
		Category:  feature.CategoryAnnotation,
	}
}

// KeyNames implements Annotator.
func (HomopolymerRun) KeyNames() []string { return []string{"HRun"} }

// Annotate implements Annotator. offset is the index of the variant base in
// refContext.
func (HomopolymerRun) Annotate(refContext string, offset int) map[string]any {
	if offset < 0 || offset >= len(refContext) {
		return nil
	}
	left := runLength(refContext, offset-1, -1)
	right := runLength(refContext, offset+1, 1)
	return map[string]any{"HRun": max(left, right)}
}

func runLength(s string, from, step int) int {
	if from < 0 || from >= len(s) {
		return 0
	}
	base := s[from]
	n := 0
	for i := from; i >= 0 && i < len(s) && s[i] == base; i += step {
		n++
	}
	return n
}
