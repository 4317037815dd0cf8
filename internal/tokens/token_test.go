package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticToken_ConstantProvider(t *testing.T) {
	tok := NewStaticToken("Season", "example.mod", true, ConstantProvider("spring"))

	assert.False(t, tok.IsReady(), "token starts not-ready before first update")
	assert.Nil(t, tok.GetValues(NoInput))

	changed := tok.UpdateContext(nil)
	assert.True(t, changed)
	require.True(t, tok.IsReady())
	assert.Equal(t, []string{"spring"}, tok.GetValues(NoInput))
}

func TestStaticToken_UpdateIdempotent(t *testing.T) {
	tok := NewStaticToken("Season", "example.mod", true, ConstantProvider("spring"))

	tok.UpdateContext(nil)
	changed := tok.UpdateContext(nil)
	assert.False(t, changed, "unchanged provider output must report no change")
}

func TestStaticToken_NotReadyProvider(t *testing.T) {
	provider := func(Context) ([]string, bool) { return nil, false }
	tok := NewStaticToken("Pending", "example.mod", true, provider)

	changed := tok.UpdateContext(nil)
	assert.False(t, changed)
	assert.False(t, tok.IsReady())
}

func TestStaticToken_ImmutableComputedOnce(t *testing.T) {
	calls := 0
	provider := func(Context) ([]string, bool) {
		calls++
		return []string{"v"}, true
	}
	tok := NewStaticToken("Fixed", "example.mod", false, provider)

	tok.UpdateContext(nil)
	tok.UpdateContext(nil)
	tok.UpdateContext(nil)

	assert.Equal(t, 1, calls, "immutable token computes exactly once")
	assert.Equal(t, []string{"v"}, tok.GetValues(NoInput))
}

func TestStaticToken_ValueChangeReported(t *testing.T) {
	value := "spring"
	provider := func(Context) ([]string, bool) { return []string{value}, true }
	tok := NewStaticToken("Season", "example.mod", true, provider)

	tok.UpdateContext(nil)
	value = "summer"
	changed := tok.UpdateContext(nil)

	assert.True(t, changed)
	assert.Equal(t, []string{"summer"}, tok.GetValues(NoInput))
}

func TestStaticToken_GetValuesReturnsCopy(t *testing.T) {
	tok := NewStaticToken("Season", "example.mod", true, ConstantProvider("spring"))
	tok.UpdateContext(nil)

	values := tok.GetValues(NoInput)
	values[0] = "mutated"

	assert.Equal(t, []string{"spring"}, tok.GetValues(NoInput))
}

func TestStaticToken_TokensUsed(t *testing.T) {
	tok := NewStaticToken("Mood", "example.mod", true, ConstantProvider("x"), "Season", "Weather")
	assert.ElementsMatch(t, []Key{KeyOf("Season"), KeyOf("Weather")}, tok.TokensUsed())
}
