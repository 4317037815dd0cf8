package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modweave/modweave/internal/testutil"
	"github.com/modweave/modweave/internal/tokens"
)

func newTestChain(t *testing.T) (*testutil.FakeParent, *ScopeContext) {
	t.Helper()
	parent := testutil.NewFakeParent("host")
	sc := NewScopeContext("example.mod", parent, WithPassIDs(testutil.NewFixedPassIDs()))
	return parent, sc
}

func TestComposite_ContainsAnyLayer(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Season", "spring")

	require.NoError(t, sc.AddStatic(tokens.NewStaticToken("Local", "example.mod", true, tokens.ConstantProvider("x"))))

	assert.True(t, sc.Contains("Season", false), "parent layer")
	assert.True(t, sc.Contains("Local", false), "static layer")
	assert.False(t, sc.Contains("Missing", false))
}

func TestComposite_ParentLayerWinsValueLookup(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Season", "spring")

	tok := sc.GetToken("Season", false)
	require.NotNil(t, tok)
	assert.Equal(t, "host", tok.Scope(), "parent layer answers before local layers")
	assert.Equal(t, []string{"spring"}, sc.GetValues("Season", tokens.NoInput, false))
}

func TestComposite_CaseInsensitiveLookup(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Season", "spring")

	assert.True(t, sc.Contains("SEASON", false))
	assert.Equal(t, []string{"spring"}, sc.GetValues("season", tokens.NoInput, false))
}

func TestComposite_GetTokensConcatenatesInPriorityOrder(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("A", "1")

	require.NoError(t, sc.AddStatic(tokens.NewStaticToken("B", "example.mod", true, tokens.ConstantProvider("2"))))
	require.NoError(t, sc.AddDynamicRule(newLiteralRule("C", "3")))

	var names []string
	for tok := range sc.GetTokens(false) {
		names = append(names, tok.Name())
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestComposite_GetTokensStopsOnEarlyBreak(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("A", "1")
	parent.Set("B", "2")

	count := 0
	for range sc.GetTokens(false) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestComposite_IsModInstalledDelegatesToParent(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.InstallMod("example.framework")

	assert.True(t, sc.IsModInstalled("example.framework"))
	assert.False(t, sc.IsModInstalled("example.other"))
}

func TestComposite_UnreadyTokenValuesNil(t *testing.T) {
	_, sc := newTestChain(t)

	provider := func(tokens.Context) ([]string, bool) { return nil, false }
	require.NoError(t, sc.AddStatic(tokens.NewStaticToken("Waiting", "example.mod", true, provider)))
	sc.UpdateContext(nil)

	assert.True(t, sc.Contains("Waiting", false), "existence is independent of readiness")
	assert.Nil(t, sc.GetValues("Waiting", tokens.NoInput, true))
}
