package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modweave/modweave/internal/tokens"
)

func TestDependencyGraph_AddAndQuery(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependent(tokens.KeyOf("X"), tokens.KeyOf("A"))
	g.AddDependent(tokens.KeyOf("X"), tokens.KeyOf("B"))

	deps := g.Dependents(tokens.KeyOf("X"))
	assert.Equal(t, 2, deps.Len())
	assert.True(t, deps.Has(tokens.KeyOf("A")))
	assert.True(t, deps.Has(tokens.KeyOf("B")))
}

func TestDependencyGraph_EmptyNotNil(t *testing.T) {
	g := NewDependencyGraph()

	deps := g.Dependents(tokens.KeyOf("Unknown"))
	require.NotNil(t, deps)
	assert.Equal(t, 0, deps.Len())
}

func TestDependencyGraph_ReturnsCopy(t *testing.T) {
	g := NewDependencyGraph()
	g.AddDependent(tokens.KeyOf("X"), tokens.KeyOf("A"))

	deps := g.Dependents(tokens.KeyOf("X"))
	deps.Add(tokens.KeyOf("B"))

	assert.Equal(t, 1, g.Dependents(tokens.KeyOf("X")).Len())
}

func TestGetDependents_DirectReference(t *testing.T) {
	_, sc := newTestChain(t)

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "happy", "Weather", "Sun")))

	deps := sc.GetDependents("Weather")
	assert.True(t, deps.Has(tokens.KeyOf("Mood")))
}

func TestGetDependents_TransitiveClosure(t *testing.T) {
	_, sc := newTestChain(t)

	// A references X; B references A. Dependents(X) must include both.
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("A", "v", "X", "1")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("B", "w", "A", "v")))

	deps := sc.GetDependents("X")
	assert.True(t, deps.Has(tokens.KeyOf("A")))
	assert.True(t, deps.Has(tokens.KeyOf("B")), "closure traverses through dynamic token A")
}

func TestGetDependents_PossiblyUsedTraversal(t *testing.T) {
	_, sc := newTestChain(t)

	// A's two rules reference X and Y respectively; A's conservative
	// superset covers both. B referencing A depends on X and Y even if
	// only one of A's rules can be active at a time.
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("A", "v1", "X", "1")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("A", "v2", "Y", "2")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("B", "w", "A", "v1")))

	bKey := tokens.KeyOf("B")
	assert.True(t, sc.GetDependents("X").Has(bKey))
	assert.True(t, sc.GetDependents("Y").Has(bKey))
}

func TestGetDependents_AllowedValuesCountAsPossiblyUsed(t *testing.T) {
	_, sc := newTestChain(t)

	// A can take the value "Alias"; a rule for B referencing A must be
	// conservatively recorded as dependent on Alias too, since A's value
	// can name a token through indirection.
	require.NoError(t, sc.AddDynamicRule(newLiteralRule("A", "Alias")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("B", "w", "A", "Alias")))

	assert.True(t, sc.GetDependents("Alias").Has(tokens.KeyOf("B")))
}

func TestGetDependents_NoDependentsEmptyNotNil(t *testing.T) {
	_, sc := newTestChain(t)

	deps := sc.GetDependents("Nothing")
	require.NotNil(t, deps)
	assert.Equal(t, 0, deps.Len())
}

func TestGetDependents_StaticTokenUsesTraversed(t *testing.T) {
	_, sc := newTestChain(t)

	// Static token S reads parent token P; a rule referencing S must also
	// be a dependent of P.
	tok := tokens.NewStaticToken("S", "example.mod", true, tokens.ConstantProvider("v"), "P")
	require.NoError(t, sc.AddStatic(tok))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("D", "w", "S", "v")))

	dKey := tokens.KeyOf("D")
	assert.True(t, sc.GetDependents("S").Has(dKey))
	assert.True(t, sc.GetDependents("P").Has(dKey))
}

func TestGetDependents_CyclicReferencesTolerated(t *testing.T) {
	_, sc := newTestChain(t)

	// A references B and B references A. The visited-once traversal must
	// terminate and record both directions.
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("A", "v", "B", "w")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("B", "w", "A", "v")))

	assert.True(t, sc.GetDependents("A").Has(tokens.KeyOf("B")))
	assert.True(t, sc.GetDependents("B").Has(tokens.KeyOf("A")))
}

func TestGetDependents_GraphAppendOnly(t *testing.T) {
	_, sc := newTestChain(t)

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("A", "v", "X", "1")))
	before := sc.GetDependents("X").Len()

	sc.UpdateContext(nil)
	sc.UpdateContext(tokens.NewKeySet("X"))

	assert.Equal(t, before, sc.GetDependents("X").Len(), "updates never prune the graph")
}
