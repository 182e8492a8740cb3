// Package edittest is a scenario harness for the persistent containers.
//
// A scenario is a YAML file describing one editing session: an optional
// initial state, a flow of edit steps (push, set, take, persist,
// derive, snapshot), and assertions over the final facade and every
// published snapshot. The runner executes the flow against the real
// container, records a deterministic trace, and evaluates the
// assertions; RunWithGolden additionally compares the trace against a
// golden file, so a structural change that alters observable behavior
// shows up as a golden diff rather than a silent pass.
//
// Traces are deterministic because edit tokens never appear in them and
// facades are driven by local, resettable minters.
package edittest
