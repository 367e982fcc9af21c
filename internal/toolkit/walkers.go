package toolkit

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"git.home.luguber.info/inful/featuredoc/internal/feature"
)

// Group names used by the walkers in this package.
const (
	GroupDiagnostics    = "Diagnostics and Quality Control Tools"
	GroupReadProcessing = "Read Data Manipulation"
)

// CountReads counts the reads that pass the mapping-quality threshold.
//
// The total is reported once the traversal finishes. Unmapped reads are
// always skipped.
//
//	featuredoc generate --source . --output docs
type CountReads struct {
	// Minimum mapping quality a read needs to be counted.
	MinMapQual int `arg:"min-mapping-quality,short=mmq"`
	// Count unmapped reads as well.
	IncludeUnmapped bool `arg:"include-unmapped,hidden"`

	count int64
}

// DocumentedFeature implements feature.Documented.
func (*CountReads) DocumentedFeature() feature.Annotation {
	return feature.Annotation{
		GroupName: GroupDiagnostics,
		Summary:   "Tools for evaluating the quality of reads and variant calls",
		Category:  feature.CategoryWalker,
		ExtraDocs: []reflect.Type{reflect.TypeFor[DocumentationTest]()},
	}
}

// Apply implements Walker.
func (w *CountReads) Apply(_ context.Context, r Read) error {
	if r.Unmapped && !w.IncludeUnmapped {
		return nil
	}
	if r.MapQual < w.MinMapQual {
		return nil
	}
	w.count++
	return nil
}

// OnTraversalDone implements Walker.
func (w *CountReads) OnTraversalDone() any { return w.count }

// PrintReads writes every read it sees to the output.
type PrintReads struct {
	// Where reads are written.
	Output io.Writer `arg:"output,short=O,required"`
	// Only print reads overlapping this contig.
	Contig string `arg:"contig,short=L"`

	printed int
}

// DocumentedFeature implements feature.Documented.
func (*PrintReads) DocumentedFeature() feature.Annotation {
	return feature.Annotation{
		GroupName: GroupReadProcessing,
		Summary:   "Tools that manipulate read data",
		Category:  feature.CategoryWalker,
	}
}

// Apply implements Walker.
func (w *PrintReads) Apply(ctx context.Context, r Read) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.Contig != "" && r.Contig != w.Contig {
		return nil
	}
	if _, err := fmt.Fprintf(w.Output, "%s\t%s\t%d\t%s\n", r.Name, r.Contig, r.Start, r.Bases); err != nil {
		return err
	}
	w.printed++
	return nil
}

// OnTraversalDone implements Walker.
func (w *PrintReads) OnTraversalDone() any { return w.printed }

// FlagStat tallies reads by their flags.
//
// Deprecated: use CountReads with --include-unmapped.
type FlagStat struct {
	mapped, unmapped int
}

// DocumentedFeature implements feature.Documented.
func (*FlagStat) DocumentedFeature() feature.Annotation {
	return feature.Annotation{GroupName: GroupDiagnostics, Category: feature.CategoryWalker}
}

// Apply implements Walker.
func (w *FlagStat) Apply(_ context.Context, r Read) error {
	if r.Unmapped {
		w.unmapped++
	} else {
		w.mapped++
	}
	return nil
}

// OnTraversalDone implements Walker.
func (w *FlagStat) OnTraversalDone() any { return [2]int{w.mapped, w.unmapped} }

// ValidateReads checks reads for malformed fields. It is meant for toolkit
// developers.
//
//featuredoc:hidden
type ValidateReads struct {
	errors int
}

// DocumentedFeature implements feature.Documented.
func (*ValidateReads) DocumentedFeature() feature.Annotation {
	return feature.Annotation{GroupName: GroupDiagnostics, Category: feature.CategoryWalker}
}

// Apply implements Walker.
func (w *ValidateReads) Apply(_ context.Context, r Read) error {
	if r.Name == "" || (!r.Unmapped && r.Contig == "") {
		w.errors++
	}
	return nil
}

// OnTraversalDone implements Walker.
func (w *ValidateReads) OnTraversalDone() any { return w.errors }

// ClipReads trims adaptor sequence from reads. It is not ready for users yet.
type ClipReads struct{}

// DocumentedFeature implements feature.Documented.
func (ClipReads) DocumentedFeature() feature.Annotation {
	return feature.Annotation{GroupName: GroupReadProcessing, Category: feature.CategoryWalker, Disabled: true}
}
