package edittest

import (
	"fmt"
	"slices"

	"github.com/perst-io/perst/array"
	"github.com/perst-io/perst/internal/testutil"
	"github.com/perst-io/perst/transience"
	"github.com/perst-io/perst/vector"
)

// TraceEvent records one executed step. Only the fields relevant to the
// step's op are populated; Items carries the content observed by
// persist and snapshot steps.
type TraceEvent struct {
	Op    string `json:"op"`
	Seq   int64  `json:"seq"`
	Index int    `json:"index,omitempty"`
	Value int    `json:"value,omitempty"`
	Count int    `json:"count,omitempty"`
	Items []int  `json:"items,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace lists the executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists assertion failures; empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates an empty passing result.
func NewResult() *Result {
	return &Result{Pass: true, Trace: []TraceEvent{}, Errors: []string{}}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// editor is the common driving surface over both container facades.
// Published snapshots are retained so assertions can re-read them after
// the flow finishes, which is exactly the immutability being tested.
type editor interface {
	push(v int)
	set(i, v int)
	take(n int)
	length() int
	items() []int
	persist() []int
	derive()
	snapshots() int
	snapshotItems(i int) []int
}

// Run executes a scenario against the real container and evaluates its
// assertions. Step misuse (a set out of range, a derive before any
// persist slipped past validation) returns an error; assertion failures
// land in the result instead.
func Run(scenario *Scenario) (*Result, error) {
	minter := testutil.NewDeterministicMinter()

	var ed editor
	switch scenario.Container {
	case ContainerVector:
		ed = newVectorEditor(minter, scenario.Setup)
	case ContainerArray:
		ed = newArrayEditor(minter, scenario.Setup)
	default:
		return nil, fmt.Errorf("unknown container %q", scenario.Container)
	}

	result := NewResult()
	var seq int64
	for i, step := range scenario.Flow {
		seq++
		ev := TraceEvent{Op: step.Op, Seq: seq}
		switch step.Op {
		case OpPush:
			ed.push(step.Value)
			ev.Value = step.Value
		case OpSet:
			if step.Index >= ed.length() {
				return nil, fmt.Errorf("flow step %d: set index %d out of range (len %d)",
					i, step.Index, ed.length())
			}
			ed.set(step.Index, step.Value)
			ev.Index = step.Index
			ev.Value = step.Value
		case OpTake:
			ed.take(step.Count)
			ev.Count = step.Count
		case OpPersist:
			ev.Items = ed.persist()
		case OpDerive:
			if ed.snapshots() == 0 {
				return nil, fmt.Errorf("flow step %d: derive before any persist", i)
			}
			ed.derive()
		case OpSnapshot:
			ev.Items = ed.items()
		default:
			return nil, fmt.Errorf("flow step %d: unknown op %q", i, step.Op)
		}
		result.Trace = append(result.Trace, ev)
	}

	evaluateAssertions(scenario, ed, result)
	return result, nil
}

func evaluateAssertions(scenario *Scenario, ed editor, result *Result) {
	for i, a := range scenario.Assertions {
		switch a.Type {
		case AssertFinalItems:
			if got := ed.items(); !slices.Equal(got, a.Items) {
				result.AddError(fmt.Sprintf("assertions[%d]: final items %v, want %v", i, got, a.Items))
			}
		case AssertSnapshotItems:
			if a.Snapshot >= ed.snapshots() {
				result.AddError(fmt.Sprintf("assertions[%d]: snapshot %d does not exist (%d published)",
					i, a.Snapshot, ed.snapshots()))
				continue
			}
			if got := ed.snapshotItems(a.Snapshot); !slices.Equal(got, a.Items) {
				result.AddError(fmt.Sprintf("assertions[%d]: snapshot %d items %v, want %v",
					i, a.Snapshot, got, a.Items))
			}
		case AssertFinalLen:
			if got := ed.length(); got != a.Len {
				result.AddError(fmt.Sprintf("assertions[%d]: final len %d, want %d", i, got, a.Len))
			}
		}
	}
}

type vectorEditor struct {
	minter *testutil.DeterministicMinter
	tr     *vector.TransientVector[int, transience.Serial]
	snaps  []vector.Vector[int, transience.Serial]
}

func newVectorEditor(m *testutil.DeterministicMinter, setup []int) *vectorEditor {
	base := vector.Of[int, transience.Serial](setup...)
	return &vectorEditor{minter: m, tr: base.Transient(m)}
}

func (e *vectorEditor) push(v int)    { e.tr.Push(v) }
func (e *vectorEditor) set(i, v int)  { e.tr.Set(i, v) }
func (e *vectorEditor) take(n int)    { e.tr.Take(n) }
func (e *vectorEditor) length() int   { return e.tr.Len() }
func (e *vectorEditor) items() []int  { return e.tr.Items() }
func (e *vectorEditor) snapshots() int { return len(e.snaps) }

func (e *vectorEditor) persist() []int {
	snap := e.tr.Persistent()
	e.snaps = append(e.snaps, snap)
	return snap.Items()
}

func (e *vectorEditor) derive() {
	e.tr = e.snaps[len(e.snaps)-1].Transient(e.minter)
}

func (e *vectorEditor) snapshotItems(i int) []int { return e.snaps[i].Items() }

type arrayEditor struct {
	minter *testutil.DeterministicMinter
	tr     *array.Transient[int, transience.Serial]
	snaps  []array.Array[int, transience.Serial]
}

func newArrayEditor(m *testutil.DeterministicMinter, setup []int) *arrayEditor {
	base := array.Of[int, transience.Serial](setup...)
	return &arrayEditor{minter: m, tr: base.Transient(m)}
}

func (e *arrayEditor) push(v int)     { e.tr.Push(v) }
func (e *arrayEditor) set(i, v int)   { e.tr.Set(i, v) }
func (e *arrayEditor) take(n int)     { e.tr.Take(n) }
func (e *arrayEditor) length() int    { return e.tr.Len() }
func (e *arrayEditor) items() []int   { return e.tr.Items() }
func (e *arrayEditor) snapshots() int { return len(e.snaps) }

func (e *arrayEditor) persist() []int {
	snap := e.tr.Persistent()
	e.snaps = append(e.snaps, snap)
	return snap.Items()
}

func (e *arrayEditor) derive() {
	e.tr = e.snaps[len(e.snaps)-1].Transient(e.minter)
}

func (e *arrayEditor) snapshotItems(i int) []int { return e.snaps[i].Items() }
