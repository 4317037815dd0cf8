package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modweave/modweave/internal/tokens"
)

// CycleWarning reports a reference cycle among a pack's dynamic tokens.
//
// Cycles are warnings, not errors: the update engine's visited-once
// traversal tolerates them (each node is visited once and terminates), so
// a cyclic pack still loads. The warning exists so pack authors notice the
// cycle before wondering why a token's value lags a pass behind.
type CycleWarning struct {
	Path    []string `json:"path"`    // cycle members, sorted, first repeated at the end
	Message string   `json:"message"`
}

// AnalyzeCycles finds reference cycles among a pack's dynamic tokens.
//
// It builds a graph with an edge from each dynamic token to every dynamic
// token its rules reference (value refs and guard conditions alike), then
// reports each strongly connected component with more than one member, or
// with a self-loop, as a warning. An acyclic pack returns an empty list.
func AnalyzeCycles(spec *PackSpec) []CycleWarning {
	if len(spec.Rules) == 0 {
		return nil
	}

	// Dynamic token names declared by this pack, in canonical form.
	declared := make(map[tokens.Key]string)
	for _, rule := range spec.Rules {
		declared[tokens.KeyOf(rule.Token)] = rule.Token
	}

	// token → referenced dynamic tokens (edges outside the pack are
	// irrelevant: external tokens cannot close a cycle through us).
	edges := make(map[tokens.Key][]tokens.Key)
	for _, rule := range spec.Rules {
		from := tokens.KeyOf(rule.Token)
		for _, ref := range ruleReferences(rule) {
			to := tokens.KeyOf(ref)
			if _, ok := declared[to]; ok {
				edges[from] = append(edges[from], to)
			}
		}
	}

	var warnings []CycleWarning
	for _, component := range stronglyConnected(declared, edges) {
		if len(component) == 1 && !hasSelfEdge(component[0], edges) {
			continue
		}

		names := make([]string, len(component))
		for i, key := range component {
			names[i] = declared[key]
		}
		sort.Strings(names)
		path := append(names, names[0])

		warnings = append(warnings, CycleWarning{
			Path:    path,
			Message: fmt.Sprintf("tokens reference each other in a cycle: %s", strings.Join(path, " -> ")),
		})
	}
	return warnings
}

// ruleReferences returns every token name a rule declaration reads.
func ruleReferences(rule RuleDecl) []string {
	var refs []string
	if rule.Ref != "" {
		name, _, _ := strings.Cut(rule.Ref, tokens.ArgSeparator)
		refs = append(refs, name)
	}
	for _, cond := range rule.When {
		refs = append(refs, cond.Token)
	}
	return refs
}

func hasSelfEdge(key tokens.Key, edges map[tokens.Key][]tokens.Key) bool {
	for _, to := range edges[key] {
		if to == key {
			return true
		}
	}
	return false
}

// stronglyConnected runs Tarjan's algorithm over the reference graph and
// returns its strongly connected components.
func stronglyConnected(declared map[tokens.Key]string, edges map[tokens.Key][]tokens.Key) [][]tokens.Key {
	type nodeState struct {
		index   int
		lowlink int
		onStack bool
		visited bool
	}

	states := make(map[tokens.Key]*nodeState, len(declared))
	for key := range declared {
		states[key] = &nodeState{}
	}

	var (
		counter    int
		stack      []tokens.Key
		components [][]tokens.Key
	)

	var visit func(key tokens.Key)
	visit = func(key tokens.Key) {
		state := states[key]
		state.visited = true
		state.index = counter
		state.lowlink = counter
		counter++
		stack = append(stack, key)
		state.onStack = true

		for _, next := range edges[key] {
			nextState := states[next]
			if nextState == nil {
				continue
			}
			if !nextState.visited {
				visit(next)
				state.lowlink = min(state.lowlink, nextState.lowlink)
			} else if nextState.onStack {
				state.lowlink = min(state.lowlink, nextState.index)
			}
		}

		if state.lowlink == state.index {
			var component []tokens.Key
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				states[top].onStack = false
				component = append(component, top)
				if top == key {
					break
				}
			}
			components = append(components, component)
		}
	}

	// Deterministic visit order keeps warning output stable.
	ordered := make([]tokens.Key, 0, len(declared))
	for key := range declared {
		ordered = append(ordered, key)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	for _, key := range ordered {
		if !states[key].visited {
			visit(key)
		}
	}
	return components
}
