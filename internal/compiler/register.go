package compiler

import (
	"fmt"

	"github.com/modweave/modweave/internal/condition"
	"github.com/modweave/modweave/internal/registry"
	"github.com/modweave/modweave/internal/tokens"
)

// Register applies a compiled pack to a scope context: static tokens
// first, then dynamic rules in file order. The context scope must match
// the pack scope.
//
// Registration stops on the first conflict; declarations registered before
// the failing one stay in effect, matching the per-call failure semantics
// of the registration operations themselves.
func Register(sc *registry.ScopeContext, spec *PackSpec) error {
	if sc.Scope() != spec.Scope {
		return fmt.Errorf("pack scope %q does not match context scope %q", spec.Scope, sc.Scope())
	}

	for _, decl := range spec.Statics {
		tok := tokens.NewStaticToken(
			decl.Name,
			spec.Scope,
			decl.Mutable,
			tokens.ConstantProvider(decl.Values...),
		)
		if err := sc.AddStatic(tok); err != nil {
			return fmt.Errorf("register static token %q: %w", decl.Name, err)
		}
	}

	for _, decl := range spec.Rules {
		if err := sc.AddDynamicRule(buildRule(decl)); err != nil {
			return fmt.Errorf("register rule for %q: %w", decl.Token, err)
		}
	}

	return nil
}

// buildRule constructs the rule object for a declaration.
func buildRule(decl RuleDecl) *condition.Rule {
	var source condition.ValueSource
	if decl.Ref != "" {
		source = condition.NewTokenRef(decl.Ref)
	} else {
		source = condition.NewLiteral(decl.Values...)
	}

	conds := make([]condition.Condition, len(decl.When))
	for i, c := range decl.When {
		conds[i] = condition.NewValueCondition(c.Token, c.Values...)
	}

	return condition.NewRule(decl.Token, source, conds...)
}
