// Package toolkit is a small read-processing toolkit whose types document
// themselves through feature markers.
//
// It is the class universe featuredoc runs against by default: walkers and
// annotators carry their own markers, codecs are picked up through the
// FeatureCodec fallback rule, and a few types exercise the disabled, hidden
// and deprecated paths.
package toolkit
