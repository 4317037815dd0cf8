// Package harness runs declarative conformance scenarios against a scope
// context.
//
// A scenario is a YAML file declaring a parent context's token values, a
// pack's static tokens and dynamic rules, a sequence of update steps, and
// assertions on the final token states. Scenarios exercise the full
// pipeline (registration, dependency tracking, update passes) without any
// Go code per case, and golden snapshots pin the final context state so
// behavior changes show up as diffs.
package harness
