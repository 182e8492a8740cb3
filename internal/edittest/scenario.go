package edittest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one container editing scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Container selects the store under test: "vector" or "array".
	Container string `yaml:"container"`

	// Setup is the initial content, built persistently before the first
	// facade is derived. Empty means start from an empty facade.
	Setup []int `yaml:"setup,omitempty"`

	// Flow is the edit sequence driven through the facade.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final facade and published snapshots.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation in the flow.
type Step struct {
	// Op names the operation; see the Op constants.
	Op string `yaml:"op"`

	// Index is the target index (set).
	Index int `yaml:"index,omitempty"`

	// Value is the element written (push, set).
	Value int `yaml:"value,omitempty"`

	// Count is the new length (take).
	Count int `yaml:"count,omitempty"`
}

// Step operations.
const (
	// OpPush appends Value through the facade.
	OpPush = "push"

	// OpSet replaces the element at Index with Value.
	OpSet = "set"

	// OpTake truncates the facade to Count elements.
	OpTake = "take"

	// OpPersist publishes the facade's state as an immutable snapshot,
	// retiring the editing session. The snapshot's content is traced.
	OpPersist = "persist"

	// OpDerive starts a fresh facade from the latest snapshot.
	OpDerive = "derive"

	// OpSnapshot traces the facade's current content without
	// publishing anything.
	OpSnapshot = "snapshot"
)

// Assertion validates final or snapshot state.
type Assertion struct {
	// Type selects the check; see the Assert constants.
	Type string `yaml:"type"`

	// Snapshot is the zero-based index of the published snapshot under
	// test (snapshot_items).
	Snapshot int `yaml:"snapshot,omitempty"`

	// Items is the exact expected content (final_items,
	// snapshot_items).
	Items []int `yaml:"items,omitempty"`

	// Len is the expected length (final_len).
	Len int `yaml:"len,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalItems    = "final_items"
	AssertSnapshotItems = "snapshot_items"
	AssertFinalLen      = "final_len"
)

// Container names.
const (
	ContainerVector = "vector"
	ContainerArray  = "array"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so a typo fails loudly instead of silently skipping a
// check.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and the flow
// is well formed enough to run.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Container != ContainerVector && s.Container != ContainerArray {
		return fmt.Errorf("container must be %q or %q, got %q",
			ContainerVector, ContainerArray, s.Container)
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	published := false
	for i, step := range s.Flow {
		switch step.Op {
		case OpPush, OpSnapshot:
		case OpSet:
			if step.Index < 0 {
				return fmt.Errorf("flow[%d]: set index must be non-negative", i)
			}
		case OpTake:
			if step.Count < 0 {
				return fmt.Errorf("flow[%d]: take count must be non-negative", i)
			}
		case OpPersist:
			published = true
		case OpDerive:
			if !published {
				return fmt.Errorf("flow[%d]: derive requires a prior persist", i)
			}
		case "":
			return fmt.Errorf("flow[%d]: op is required", i)
		default:
			return fmt.Errorf("flow[%d]: unknown op %q", i, step.Op)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, s); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion, s *Scenario) error {
	switch a.Type {
	case AssertFinalItems:
		if a.Items == nil {
			return fmt.Errorf("assertions[%d]: items is required for final_items (use [] for empty)", index)
		}
	case AssertSnapshotItems:
		if a.Items == nil {
			return fmt.Errorf("assertions[%d]: items is required for snapshot_items (use [] for empty)", index)
		}
		if a.Snapshot < 0 {
			return fmt.Errorf("assertions[%d]: snapshot index must be non-negative", index)
		}
	case AssertFinalLen:
		if a.Len < 0 {
			return fmt.Errorf("assertions[%d]: len must be non-negative", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
