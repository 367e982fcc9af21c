package generator

import (
	"errors"
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
	"git.home.luguber.info/inful/featuredoc/internal/config"
	"git.home.luguber.info/inful/featuredoc/internal/feature"
	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
	"git.home.luguber.info/inful/featuredoc/internal/logfields"
	"git.home.luguber.info/inful/featuredoc/internal/metrics"
	"git.home.luguber.info/inful/featuredoc/internal/registry"
	"git.home.luguber.info/inful/featuredoc/internal/workunit"
)

// Resolver maps a class doc to its runtime type.
type Resolver interface {
	Resolve(doc classdoc.ClassDoc) (reflect.Type, error)
}

// HandlerFactory creates the handler for a classified class. It returns nil
// for classes that must not be documented.
type HandlerFactory interface {
	HandlerFor(doc classdoc.ClassDoc, d feature.Descriptor) workunit.Handler
}

// Deps are the collaborators of the work-unit builder.
type Deps struct {
	Resolver   Resolver
	Classifier *feature.Classifier
	Handlers   HandlerFactory
	// Keepers are the only types documented in test-only runs.
	Keepers []reflect.Type
	// AllowCollisions downgrades duplicate (group, name) pairs to warnings.
	AllowCollisions bool

	Logger   *slog.Logger
	Recorder metrics.Recorder
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d Deps) recorder() metrics.Recorder {
	if d.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return d.Recorder
}

// BuildWorkUnits returns the ordered, duplicate-free work units for every
// documentable class in root.
func BuildWorkUnits(root *classdoc.Root, rc config.RunContext, deps Deps) ([]*workunit.Unit, error) {
	if deps.Resolver == nil || deps.Classifier == nil || deps.Handlers == nil {
		return nil, ferrors.InternalError("work-unit builder is missing a collaborator").Build()
	}
	log := deps.logger()
	rec := deps.recorder()

	var units []*workunit.Unit
	for _, doc := range root.Classes() {
		class := logfields.Class(doc.QualifiedName())

		t, err := deps.Resolver.Resolve(doc)
		if err != nil {
			if !errors.Is(err, registry.ErrTypeNotFound) {
				rerr := ferrors.WrapError(err, ferrors.CategoryResolution, "unexpected class resolution failure").
					Warning().
					WithContext("class", doc.QualifiedName()).
					Build()
				log.Warn(rerr.Message(), class,
					logfields.Category(string(rerr.Category())),
					logfields.Error(rerr))
			}
			log.Debug("Skipping unresolvable class", class)
			rec.IncUnitOutcome(metrics.OutcomeUnresolved)
			continue
		}

		if rc.TestOnly && !slices.Contains(deps.Keepers, t) {
			rec.IncUnitOutcome(metrics.OutcomeTestFiltered)
			continue
		}

		d, ok := deps.Classifier.Classify(t)
		if !ok {
			rec.IncUnitOutcome(metrics.OutcomeUnclassified)
			continue
		}

		h := deps.Handlers.HandlerFor(doc, d)
		if h == nil {
			rec.IncUnitOutcome(metrics.OutcomeDisabled)
			continue
		}
		if !h.IncludeInDocs(doc, t) {
			log.Debug("Skipping excluded class", class, logfields.Group(d.GroupName))
			rec.IncUnitOutcome(metrics.OutcomeExcluded)
			continue
		}

		log.Info("Generating documentation for class", class,
			logfields.Group(d.GroupName),
			logfields.Category(d.Category))
		units = append(units, &workunit.Unit{
			Name:            doc.Name,
			Filename:        h.DestinationFilename(doc, t),
			Group:           d.GroupName,
			Feature:         d,
			Handler:         h,
			ClassDoc:        doc,
			Type:            t,
			BuildTimestamp:  rc.BuildTimestamp,
			AbsoluteVersion: rc.AbsoluteVersion,
		})
	}

	ordered, conflicts := workunit.Ordered(units)
	if len(conflicts) > 0 {
		for _, c := range conflicts {
			rec.IncUnitOutcome(metrics.OutcomeConflict)
			log.Warn("Duplicate work unit",
				logfields.Group(c.Kept.Group),
				logfields.Class(c.Dropped.ClassDoc.QualifiedName()),
				slog.String("kept", c.Kept.ClassDoc.QualifiedName()))
		}
		if !deps.AllowCollisions {
			first := conflicts[0]
			return nil, ferrors.ConflictError("duplicate documentation entries").
				WithContext("group", first.Kept.Group).
				WithContext("name", first.Kept.Name).
				WithContext("kept", first.Kept.ClassDoc.QualifiedName()).
				WithContext("dropped", first.Dropped.ClassDoc.QualifiedName()).
				WithContext("conflicts", len(conflicts)).
				Build()
		}
	}

	collisions := workunit.FilenameCollisions(ordered)
	for _, name := range slices.Sorted(maps.Keys(collisions)) {
		shared := collisions[name]
		classes := make([]string, 0, len(shared))
		for _, u := range shared {
			classes = append(classes, u.ClassDoc.QualifiedName())
		}
		log.Warn("Work units share a destination file", logfields.Filename(name), slog.Any("classes", classes))
	}

	for range ordered {
		rec.IncUnitOutcome(metrics.OutcomeGenerated)
	}
	rec.SetUnits(len(ordered))
	return ordered, nil
}
