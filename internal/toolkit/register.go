package toolkit

import (
	"reflect"

	"git.home.luguber.info/inful/featuredoc/internal/feature"
	"git.home.luguber.info/inful/featuredoc/internal/registry"
)

// Codec group used by the default fallback rule.
const (
	GroupCodecs   = "Reference ordered data (ROD) codecs"
	SummaryCodecs = "Codecs for reading reference ordered data such as VCF or BED files"
)

// Types returns every type the toolkit exposes for documentation.
func Types() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[Read](),
		reflect.TypeFor[Feature](),
		reflect.TypeFor[Walker](),
		reflect.TypeFor[Annotator](),
		reflect.TypeFor[FeatureCodec](),
		reflect.TypeFor[CountReads](),
		reflect.TypeFor[PrintReads](),
		reflect.TypeFor[FlagStat](),
		reflect.TypeFor[ValidateReads](),
		reflect.TypeFor[ClipReads](),
		reflect.TypeFor[HomopolymerRun](),
		reflect.TypeFor[VCFCodec](),
		reflect.TypeFor[BEDCodec](),
		reflect.TypeFor[DocumentationTest](),
		reflect.TypeFor[CommandLine](),
		reflect.TypeFor[UserError](),
	}
}

// Register adds the toolkit types to reg. Codecs that depend on native
// bridges are registered as lazy loaders.
func Register(reg *registry.Registry) error {
	if err := reg.Register(Types()...); err != nil {
		return err
	}
	reg.RegisterLoader(registry.QualifiedName(reflect.TypeFor[BAMCodec]()), loadBAMCodec)
	return nil
}

// TestOnlyKeepers lists the types documented in test-only runs.
func TestOnlyKeepers() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[DocumentationTest](),
		reflect.TypeFor[CommandLine](),
		reflect.TypeFor[UserError](),
	}
}

// DefaultRules is the fallback table for toolkit types without a marker.
func DefaultRules() []feature.Rule {
	return []feature.Rule{
		feature.NewRule(reflect.TypeFor[FeatureCodec](), GroupCodecs, SummaryCodecs, feature.CategoryCodec),
	}
}
