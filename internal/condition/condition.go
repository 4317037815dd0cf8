package condition

import (
	"github.com/modweave/modweave/internal/tokens"
)

// Condition gates a rule on the current state of the context. Conditions
// are re-evaluated every update pass: UpdateContext refreshes the state,
// then IsReady and IsMatch report on it.
type Condition interface {
	// UpdateContext refreshes the condition against the current context.
	UpdateContext(ctx tokens.Context)

	// IsReady reports whether the condition could be evaluated at all.
	// An unready condition never matches.
	IsReady() bool

	// IsMatch reports whether the condition held on the last update.
	IsMatch() bool

	// TokensUsed returns the names of tokens the condition reads.
	TokensUsed() []string
}

// ValueCondition holds when the referenced token is ready and at least one
// of its current values is in the allowed set. Value comparison is
// case-insensitive, like name comparison.
type ValueCondition struct {
	token   string
	allowed tokens.KeySet

	ready bool
	match bool
}

// NewValueCondition creates a condition on the named token's values.
func NewValueCondition(token string, allowed ...string) *ValueCondition {
	return &ValueCondition{
		token:   token,
		allowed: tokens.NewKeySet(allowed...),
	}
}

// Token returns the name of the token the condition reads.
func (c *ValueCondition) Token() string { return c.token }

// UpdateContext re-reads the token and recomputes the match state.
func (c *ValueCondition) UpdateContext(ctx tokens.Context) {
	c.ready = false
	c.match = false

	tok := ctx.GetToken(c.token, true)
	if tok == nil || !tok.IsReady() {
		return
	}
	c.ready = true

	for _, v := range tok.GetValues(tokens.NoInput) {
		if c.allowed.Has(tokens.KeyOf(v)) {
			c.match = true
			return
		}
	}
}

// IsReady reports whether the token resolved on the last update.
func (c *ValueCondition) IsReady() bool { return c.ready }

// IsMatch reports whether any current value was in the allowed set.
func (c *ValueCondition) IsMatch() bool { return c.ready && c.match }

// TokensUsed returns the condition's token name.
func (c *ValueCondition) TokensUsed() []string { return []string{c.token} }

// AllowedValues returns the allowed value keys in sorted order.
// Used for diagnostics output.
func (c *ValueCondition) AllowedValues() []string {
	keys := c.allowed.Sorted()
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = string(k)
	}
	return values
}
