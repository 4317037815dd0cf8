package registry

import (
	"slices"

	"github.com/modweave/modweave/internal/tokens"
)

// DynamicToken is a token whose value is assigned by the update pass from
// the winning rule, not computed by its own logic.
//
// Beyond its current value, the token accumulates two metadata sets as
// rules register against it: the union of token names its rules actually
// reference, and the values any rule could assign. Both feed conservative
// dependency-graph construction, because which tokens a dynamic token uses
// varies by which of its rules is active.
type DynamicToken struct {
	name  string
	scope string

	values []string
	ready  bool

	used    tokens.KeySet
	allowed tokens.KeySet
}

// NewDynamicToken creates an empty, not-ready dynamic token. Dynamic
// tokens inherit the scope of their owning context.
func NewDynamicToken(name, scope string) *DynamicToken {
	return &DynamicToken{
		name:    name,
		scope:   scope,
		used:    make(tokens.KeySet),
		allowed: make(tokens.KeySet),
	}
}

// Name returns the token's display name.
func (t *DynamicToken) Name() string { return t.name }

// Scope returns the owning context's scope.
func (t *DynamicToken) Scope() string { return t.scope }

// IsMutable always reports true: dynamic tokens are reassigned every
// effective update pass.
func (t *DynamicToken) IsMutable() bool { return true }

// IsReady reports whether a rule assigned a value this pass.
func (t *DynamicToken) IsReady() bool { return t.ready }

// GetValues returns the winning rule's values, or nil when not ready.
func (t *DynamicToken) GetValues(tokens.Input) []string {
	if !t.ready {
		return nil
	}
	return slices.Clone(t.values)
}

// TokensUsed returns the union of token keys referenced across all rules,
// in sorted order.
func (t *DynamicToken) TokensUsed() []tokens.Key {
	return t.used.Sorted()
}

// UpdateContext is a no-op: the update pass assigns dynamic token values
// directly via SetValue and SetReady.
func (t *DynamicToken) UpdateContext(tokens.Context) bool { return false }

// SetValue replaces the token's current values. nil clears them.
func (t *DynamicToken) SetValue(values []string) {
	t.values = slices.Clone(values)
}

// SetReady sets the readiness flag.
func (t *DynamicToken) SetReady(ready bool) {
	t.ready = ready
}

// AddTokensUsed merges referenced token names into the aggregate set.
func (t *DynamicToken) AddTokensUsed(names []string) {
	for _, name := range names {
		t.used.Add(tokens.KeyOf(name))
	}
}

// AddAllowedValues merges values a rule could assign. Allowed values count
// as possibly-referenced names, since a dynamic token's value can itself
// name a token through indirection.
func (t *DynamicToken) AddAllowedValues(values []string) {
	for _, v := range values {
		t.allowed.Add(tokens.KeyOf(v))
	}
}

// PossiblyUsed returns the conservative superset of token keys any rule
// might reference: the actually-used union plus every allowed value.
func (t *DynamicToken) PossiblyUsed() tokens.KeySet {
	s := t.used.Clone()
	s.AddAll(t.allowed)
	return s
}
