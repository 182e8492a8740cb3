package edittest

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot is the golden-file shape for one scenario execution.
// It is serialized through a map so keys come out sorted, which keeps
// the files stable no matter how the structs evolve.
type TraceSnapshot struct {
	Scenario  string
	Container string
	Setup     []int
	Trace     []TraceEvent
}

func (s *TraceSnapshot) toSortedMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		eventMap := map[string]any{
			"op":  ev.Op,
			"seq": ev.Seq,
		}
		switch ev.Op {
		case OpPush:
			eventMap["value"] = ev.Value
		case OpSet:
			eventMap["index"] = ev.Index
			eventMap["value"] = ev.Value
		case OpTake:
			eventMap["count"] = ev.Count
		case OpPersist, OpSnapshot:
			eventMap["items"] = ev.Items
		}
		traceList[i] = eventMap
	}

	result := map[string]any{
		"scenario":  s.Scenario,
		"container": s.Container,
		"trace":     traceList,
	}
	if len(s.Setup) > 0 {
		result["setup"] = s.Setup
	}
	return result
}

// RunWithGolden executes a scenario, requires its assertions to pass,
// and compares the trace against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/edittest -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot := TraceSnapshot{
		Scenario:  scenario.Name,
		Container: scenario.Container,
		Setup:     scenario.Setup,
		Trace:     result.Trace,
	}
	traceJSON, err := json.MarshalIndent(snapshot.toSortedMap(), "", "  ")
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)
	return result, nil
}
