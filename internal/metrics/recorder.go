package metrics

import "time"

// UnitOutcome is what happened to one class during a run.
type UnitOutcome string

const (
	OutcomeGenerated    UnitOutcome = "generated"
	OutcomeDisabled     UnitOutcome = "skipped_disabled"
	OutcomeExcluded     UnitOutcome = "skipped_excluded"
	OutcomeUnresolved   UnitOutcome = "unresolved"
	OutcomeUnclassified UnitOutcome = "unclassified"
	OutcomeTestFiltered UnitOutcome = "test_filtered"
	OutcomeConflict     UnitOutcome = "conflict"
)

// RunOutcome is the final status of a run.
type RunOutcome string

const (
	RunSuccess  RunOutcome = "success"
	RunFailed   RunOutcome = "failed"
	RunCanceled RunOutcome = "canceled"
)

// Recorder defines observability hooks for documentation runs.
type Recorder interface {
	IncUnitOutcome(outcome UnitOutcome)
	ObserveRenderDuration(template string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcome)
	SetUnits(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncUnitOutcome(UnitOutcome)                  {}
func (NoopRecorder) ObserveRenderDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)            {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                    {}
func (NoopRecorder) SetUnits(int)                                {}
