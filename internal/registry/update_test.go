package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modweave/modweave/internal/testutil"
	"github.com/modweave/modweave/internal/tokens"
)

func TestUpdateContext_LastMatchingRuleWins(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Sun")

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "a", "Weather", "Rain"))) // false
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "b", "Weather", "Sun")))  // true
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "c", "Weather", "Sun")))  // true

	sc.UpdateContext(nil)

	assert.Equal(t, []string{"c"}, sc.GetValues("Mood", tokens.NoInput, true))
}

func TestUpdateContext_ReorderingChangesWinner(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Sun")

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "a", "Weather", "Rain")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "c", "Weather", "Sun")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "b", "Weather", "Sun")))

	sc.UpdateContext(nil)

	assert.Equal(t, []string{"b"}, sc.GetValues("Mood", tokens.NoInput, true))
}

func TestUpdateContext_NoMatchingRuleNotReady(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Snow")

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "a", "Weather", "Sun")))
	sc.UpdateContext(nil)

	tok := sc.GetToken("Mood", true)
	require.NotNil(t, tok)
	assert.False(t, tok.IsReady())
	assert.Nil(t, sc.GetValues("Mood", tokens.NoInput, true))
}

func TestUpdateContext_EmptyChangedEmptyPendingIsNoOp(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Sun")

	static := testutil.NewRecordingToken("Tracker", "example.mod", true, "v")
	require.NoError(t, sc.AddStatic(static))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "happy", "Weather", "Sun")))

	sc.UpdateContext(nil) // drains pending
	updatesBefore := static.Updates()
	valuesBefore := sc.GetValues("Mood", tokens.NoInput, true)

	sc.UpdateContext(nil) // true no-op

	assert.Equal(t, updatesBefore, static.Updates(), "no static self-update on a no-op pass")
	assert.Equal(t, valuesBefore, sc.GetValues("Mood", tokens.NoInput, true))
}

func TestUpdateContext_UnknownChangedNameNoEffect(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Sun")

	static := testutil.NewRecordingToken("Tracker", "example.mod", true, "v")
	require.NoError(t, sc.AddStatic(static))
	sc.UpdateContext(nil)
	before := static.Updates()

	// Changed name with no dependents and nothing pending: affected set
	// is empty, so the pass exits before touching anything.
	sc.UpdateContext(tokens.NewKeySet("Unrelated"))

	assert.Equal(t, before, static.Updates())
}

func TestUpdateContext_PendingTokenAlwaysAffected(t *testing.T) {
	_, sc := newTestChain(t)

	static := testutil.NewRecordingToken("Fresh", "example.mod", true, "v")
	require.NoError(t, sc.AddStatic(static))
	require.Equal(t, 1, sc.PendingCount())

	sc.UpdateContext(nil) // empty changed set, pending still drives the pass

	assert.Equal(t, 1, static.Updates(), "newly registered token updates on the very next pass")
	assert.Equal(t, 0, sc.PendingCount(), "pending set cleared after the pass")
}

func TestUpdateContext_NewRuleEvaluatedWithoutUpstreamChange(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Sun")

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "happy", "Weather", "Sun")))
	sc.UpdateContext(nil)
	assert.Equal(t, []string{"happy"}, sc.GetValues("Mood", tokens.NoInput, true))

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "giddy", "Weather", "Sun")))
	sc.UpdateContext(nil)

	assert.Equal(t, []string{"giddy"}, sc.GetValues("Mood", tokens.NoInput, true))
}

func TestUpdateContext_UpstreamChangePropagatesThroughGuards(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Sun")

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "happy", "Weather", "Sun")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "gloomy", "Weather", "Rain")))
	sc.UpdateContext(nil)
	require.Equal(t, []string{"happy"}, sc.GetValues("Mood", tokens.NoInput, true))

	parent.Set("Weather", "Rain")
	sc.UpdateContext(tokens.NewKeySet("Weather"))

	assert.Equal(t, []string{"gloomy"}, sc.GetValues("Mood", tokens.NoInput, true))
}

func TestUpdateContext_FullResetDropsStaleValues(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Weather", "Sun")

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Mood", "happy", "Weather", "Sun")))
	sc.UpdateContext(nil)
	require.True(t, sc.GetToken("Mood", true).IsReady())

	parent.Set("Weather", "Snow")
	sc.UpdateContext(tokens.NewKeySet("Weather"))

	tok := sc.GetToken("Mood", true)
	assert.False(t, tok.IsReady(), "no matching rule leaves the token reset and not-ready")
	assert.Nil(t, tok.GetValues(tokens.NoInput))
}

func TestUpdateContext_UnaffectedStaticUntouchedByEffectivePass(t *testing.T) {
	_, sc := newTestChain(t)

	settled := testutil.NewRecordingToken("Settled", "example.mod", true, "v")
	require.NoError(t, sc.AddStatic(settled))
	sc.UpdateContext(nil) // Settled leaves the pending set
	require.Equal(t, 1, settled.Updates())

	// A newly registered token drives an effective pass; Settled is not
	// in the affected set and must be left alone.
	fresh := testutil.NewRecordingToken("Fresh", "example.mod", true, "w")
	require.NoError(t, sc.AddStatic(fresh))
	sc.UpdateContext(nil)

	assert.Equal(t, 1, settled.Updates())
	assert.Equal(t, 1, fresh.Updates())
}

func TestUpdateContext_ImmutableStaticNeverRefreshed(t *testing.T) {
	_, sc := newTestChain(t)

	calls := 0
	provider := func(tokens.Context) ([]string, bool) {
		calls++
		return []string{"v"}, true
	}
	require.NoError(t, sc.AddStatic(tokens.NewStaticToken("Fixed", "example.mod", false, provider)))
	require.Equal(t, 1, calls, "computed once at registration")

	sc.UpdateContext(nil)
	sc.UpdateContext(tokens.NewKeySet("Fixed"))

	assert.Equal(t, 1, calls)
}

func TestUpdateContext_RuleReferencingDynamicToken(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Season", "winter")

	require.NoError(t, sc.AddDynamicRule(newGuardedRule("Holiday", "yes", "Season", "winter")))
	require.NoError(t, sc.AddDynamicRule(newGuardedRule("ShopHours", "short", "Holiday", "yes")))
	sc.UpdateContext(nil)

	// Rules evaluate in registration order, so ShopHours sees Holiday's
	// assignment from earlier in this same pass.
	assert.Equal(t, []string{"short"}, sc.GetValues("ShopHours", tokens.NoInput, true))

	parent.Set("Season", "spring")
	sc.UpdateContext(tokens.NewKeySet("Season"))

	assert.Nil(t, sc.GetValues("Holiday", tokens.NoInput, true))
	assert.Nil(t, sc.GetValues("ShopHours", tokens.NoInput, true))
}

func TestUpdateContext_TokenRefSourceMirrorsUpstream(t *testing.T) {
	parent, sc := newTestChain(t)
	parent.Set("Season", "spring")

	require.NoError(t, sc.AddDynamicRule(newRefRule("Echo", "Season")))
	sc.UpdateContext(nil)
	assert.Equal(t, []string{"spring"}, sc.GetValues("Echo", tokens.NoInput, true))

	parent.Set("Season", "summer")
	sc.UpdateContext(tokens.NewKeySet("Season"))
	assert.Equal(t, []string{"summer"}, sc.GetValues("Echo", tokens.NoInput, true))
}

func TestUpdateContext_MultiValueAssignment(t *testing.T) {
	_, sc := newTestChain(t)

	require.NoError(t, sc.AddDynamicRule(newLiteralRule("Colors", "red", "blue")))
	sc.UpdateContext(nil)

	assert.Equal(t, []string{"red", "blue"}, sc.GetValues("Colors", tokens.NoInput, true))
}
