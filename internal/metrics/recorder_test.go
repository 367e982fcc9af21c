package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	outcomes map[UnitOutcome]int
	renders  map[string]int
	runs     map[RunOutcome]int
	units    int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{outcomes: map[UnitOutcome]int{}, renders: map[string]int{}, runs: map[RunOutcome]int{}}
}

func (t *testRecorder) IncUnitOutcome(o UnitOutcome) { t.outcomes[o]++ }
func (t *testRecorder) ObserveRenderDuration(tmpl string, _ time.Duration) {
	t.renders[tmpl]++
}
func (t *testRecorder) ObserveRunDuration(time.Duration) {}
func (t *testRecorder) IncRunOutcome(o RunOutcome)       { t.runs[o]++ }
func (t *testRecorder) SetUnits(n int)                   { t.units = n }

func TestRecorderImplementations(t *testing.T) {
	for name, r := range map[string]Recorder{
		"noop":       NoopRecorder{},
		"prometheus": NewPrometheusRecorder(nil),
		"test":       newTestRecorder(),
	} {
		t.Run(name, func(t *testing.T) {
			r.IncUnitOutcome(OutcomeExcluded)
			r.ObserveRenderDuration("generic.template.html", time.Millisecond)
			r.ObserveRunDuration(time.Second)
			r.IncRunOutcome(RunCanceled)
			r.SetUnits(0)
		})
	}
}
