package harness

import (
	"fmt"

	"github.com/modweave/modweave/internal/compiler"
	"github.com/modweave/modweave/internal/registry"
	"github.com/modweave/modweave/internal/testutil"
	"github.com/modweave/modweave/internal/tokens"
)

// Result is the outcome of running a scenario: the final context state
// plus any assertion failures.
type Result struct {
	Scenario string
	Scope    string
	States   []TokenState
	Failures []string
}

// TokenState captures one local token's state after the final pass.
type TokenState struct {
	Name   string   `json:"name"`
	Ready  bool     `json:"ready"`
	Values []string `json:"values,omitempty"`
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario: build the parent, register the pack, run the
// initial update pass and one pass per step, then evaluate assertions.
func Run(scenario *Scenario) (*Result, error) {
	parent := testutil.NewFakeParent("host")
	for name, values := range scenario.Parent {
		parent.Set(name, values...)
	}
	for _, id := range scenario.Mods {
		parent.InstallMod(id)
	}

	sc := registry.NewScopeContext(scenario.Scope, parent,
		registry.WithPassIDs(testutil.NewFixedPassIDs()))

	if err := compiler.Register(sc, packSpec(scenario)); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	// Initial pass drains the pending set.
	sc.UpdateContext(nil)

	for _, step := range scenario.Steps {
		changed := make(tokens.KeySet)
		for name, values := range step.Set {
			parent.Set(name, values...)
			changed.Add(tokens.KeyOf(name))
		}
		for _, name := range step.Changed {
			changed.Add(tokens.KeyOf(name))
		}
		sc.UpdateContext(changed)
	}

	result := &Result{
		Scenario: scenario.Name,
		Scope:    scenario.Scope,
		States:   snapshot(sc),
	}
	result.Failures = evaluateAssertions(scenario, sc)
	return result, nil
}

// packSpec converts a scenario's token declarations into a compiled pack,
// so registration goes through the same path as CUE-loaded packs.
func packSpec(scenario *Scenario) *compiler.PackSpec {
	spec := &compiler.PackSpec{Scope: scenario.Scope}
	for _, s := range scenario.Statics {
		spec.Statics = append(spec.Statics, compiler.StaticDecl{
			Name:    s.Name,
			Values:  s.Values,
			Mutable: s.Mutable,
		})
	}
	for _, r := range scenario.Rules {
		decl := compiler.RuleDecl{Token: r.Token, Values: r.Values, Ref: r.Ref}
		for _, c := range r.When {
			decl.When = append(decl.When, compiler.ConditionDecl{Token: c.Token, Values: c.Values})
		}
		spec.Rules = append(spec.Rules, decl)
	}
	return spec
}

// snapshot captures every local token's state in registration order.
func snapshot(sc *registry.ScopeContext) []TokenState {
	var states []TokenState
	for tok := range sc.LocalTokens() {
		states = append(states, TokenState{
			Name:   tok.Name(),
			Ready:  tok.IsReady(),
			Values: tok.GetValues(tokens.NoInput),
		})
	}
	return states
}
