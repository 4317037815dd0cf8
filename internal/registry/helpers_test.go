package registry

import (
	"github.com/modweave/modweave/internal/condition"
)

// newLiteralRule builds an unconditional rule assigning fixed values.
func newLiteralRule(name string, values ...string) *condition.Rule {
	return condition.NewRule(name, condition.NewLiteral(values...))
}

// newGuardedRule builds a rule gated on another token holding one of the
// allowed values.
func newGuardedRule(name string, value string, guardToken string, guardValues ...string) *condition.Rule {
	return condition.NewRule(name,
		condition.NewLiteral(value),
		condition.NewValueCondition(guardToken, guardValues...),
	)
}

// newRefRule builds an unconditional rule mirroring another token's values.
func newRefRule(name, ref string) *condition.Rule {
	return condition.NewRule(name, condition.NewTokenRef(ref))
}
