package registry

import "github.com/modweave/modweave/internal/tokens"

// DependencyGraph maps each referenced token name to the set of
// dynamic-rule-owning tokens that must recompute when it changes.
//
// The graph is append-only: edges accumulate as rules register and are
// never pruned, since rule removal is not supported.
type DependencyGraph struct {
	dependents map[tokens.Key]tokens.KeySet
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{dependents: make(map[tokens.Key]tokens.KeySet)}
}

// AddDependent records that dependent must recompute when upstream changes.
func (g *DependencyGraph) AddDependent(upstream, dependent tokens.Key) {
	set, ok := g.dependents[upstream]
	if !ok {
		set = make(tokens.KeySet)
		g.dependents[upstream] = set
	}
	set.Add(dependent)
}

// Dependents returns a copy of the dependent set for upstream. The result
// is empty, never nil, when no dependents are recorded.
func (g *DependencyGraph) Dependents(upstream tokens.Key) tokens.KeySet {
	if set, ok := g.dependents[upstream]; ok {
		return set.Clone()
	}
	return make(tokens.KeySet)
}

// UpstreamCount returns the number of upstream names with recorded
// dependents. Used for introspection.
func (g *DependencyGraph) UpstreamCount() int {
	return len(g.dependents)
}
