package tokens

import "slices"

// ValueProvider computes a static token's values against the composite
// context. The second return reports readiness: a provider that cannot
// currently produce a value returns (nil, false) and the token stays
// not-ready until a later update pass.
type ValueProvider func(ctx Context) ([]string, bool)

// ConstantProvider returns a provider that always yields the given values.
func ConstantProvider(values ...string) ValueProvider {
	return func(Context) ([]string, bool) {
		return values, true
	}
}

// StaticToken is a token whose value is computed by its own provider logic
// rather than by conditional rules.
type StaticToken struct {
	name     string
	scope    string
	mutable  bool
	provider ValueProvider
	uses     []Key

	values []string
	ready  bool
}

// NewStaticToken creates a static token owned by the given scope.
//
// uses lists the names of tokens the provider reads; it feeds dependency
// tracking when dynamic rules reference this token.
func NewStaticToken(name, scope string, mutable bool, provider ValueProvider, uses ...string) *StaticToken {
	keys := make([]Key, len(uses))
	for i, u := range uses {
		keys[i] = KeyOf(u)
	}
	return &StaticToken{
		name:     name,
		scope:    scope,
		mutable:  mutable,
		provider: provider,
		uses:     keys,
	}
}

// Name returns the token's display name.
func (t *StaticToken) Name() string { return t.name }

// Scope returns the namespace of the owning mod.
func (t *StaticToken) Scope() string { return t.scope }

// IsMutable reports whether the token refreshes on update passes.
func (t *StaticToken) IsMutable() bool { return t.mutable }

// IsReady reports whether the token currently has a usable value.
func (t *StaticToken) IsReady() bool { return t.ready }

// GetValues returns the values cached by the last update pass.
// The positional input is ignored: provider-backed tokens carry a single
// value set.
func (t *StaticToken) GetValues(Input) []string {
	if !t.ready {
		return nil
	}
	return slices.Clone(t.values)
}

// TokensUsed returns the keys of tokens the provider reads.
func (t *StaticToken) TokensUsed() []Key {
	return slices.Clone(t.uses)
}

// UpdateContext recomputes the token's values via its provider and reports
// whether they changed. Immutable tokens compute once and are never
// refreshed afterwards.
func (t *StaticToken) UpdateContext(ctx Context) bool {
	if !t.mutable && t.ready {
		return false
	}
	values, ok := t.provider(ctx)
	changed := ok != t.ready || !slices.Equal(values, t.values)
	t.values = slices.Clone(values)
	t.ready = ok
	return changed
}
