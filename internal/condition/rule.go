package condition

import (
	"slices"

	"github.com/modweave/modweave/internal/tokens"
)

// Rule is one conditional value definition for a dynamic token. A dynamic
// token owns an ordered list of rules; at recompute time the last rule in
// registration order whose conditions all hold and whose source is ready
// supplies the token's value.
//
// Rules are immutable once registered: the target name, source, and
// condition list never change. Only the resolution state mutates, and only
// through UpdateContext.
type Rule struct {
	name       string
	source     ValueSource
	conditions []Condition
}

// NewRule creates a rule assigning the source's values to the named dynamic
// token whenever every condition holds.
func NewRule(name string, source ValueSource, conditions ...Condition) *Rule {
	return &Rule{
		name:       name,
		source:     source,
		conditions: slices.Clone(conditions),
	}
}

// Name returns the target dynamic token's name.
func (r *Rule) Name() string { return r.name }

// Conditions returns the ordered guard conditions.
func (r *Rule) Conditions() []Condition { return slices.Clone(r.conditions) }

// UpdateContext re-resolves the value source and every condition against
// the current context.
func (r *Rule) UpdateContext(ctx tokens.Context) {
	r.source.UpdateContext(ctx)
	for _, c := range r.conditions {
		c.UpdateContext(ctx)
	}
}

// IsReady reports whether the source and every condition resolved on the
// last update.
func (r *Rule) IsReady() bool {
	if !r.source.IsReady() {
		return false
	}
	for _, c := range r.conditions {
		if !c.IsReady() {
			return false
		}
	}
	return true
}

// IsMatch reports whether every condition held on the last update. A rule
// with no conditions always matches.
func (r *Rule) IsMatch() bool {
	for _, c := range r.conditions {
		if !c.IsMatch() {
			return false
		}
	}
	return true
}

// Values returns the source's values from the last update.
func (r *Rule) Values() []string { return r.source.Values() }

// TokensUsed returns the names of every token the source or any condition
// reads.
func (r *Rule) TokensUsed() []string {
	var used []string
	used = append(used, r.source.TokensUsed()...)
	for _, c := range r.conditions {
		used = append(used, c.TokensUsed()...)
	}
	return used
}

// PossibleValues returns every value the rule could assign, or nil when
// the source's value set is open.
func (r *Rule) PossibleValues() []string { return r.source.PossibleValues() }
