package toolkit

import "context"

// Read is one sequenced read.
type Read struct {
	Name     string
	Contig   string
	Start    int
	Bases    string
	MapQual  int
	Unmapped bool
}

// Walker traverses reads and reports a result when the traversal ends.
type Walker interface {
	Apply(ctx context.Context, r Read) error
	OnTraversalDone() any
}

// Annotator computes annotations for a variant site from its reference
// context.
type Annotator interface {
	KeyNames() []string
	Annotate(refContext string, offset int) map[string]any
}

// FeatureCodec reads one reference-ordered data format.
type FeatureCodec interface {
	Extension() string
	CanDecode(path string) bool
	Decode(line string) (Feature, error)
}

// Feature is one decoded interval.
type Feature struct {
	Contig string
	Start  int
	End    int
	Name   string
}
