package registry

import (
	"iter"
	"log/slog"
	"strings"

	"github.com/modweave/modweave/internal/tokens"
)

// Rule is the contract a dynamic token value definition must satisfy to be
// registered. Satisfied by condition.Rule.
type Rule interface {
	// Name returns the target dynamic token's name.
	Name() string

	// UpdateContext re-resolves the rule's value and conditions against
	// the current composite context.
	UpdateContext(ctx tokens.Context)

	// IsReady reports whether the value and conditions resolved on the
	// last update.
	IsReady() bool

	// IsMatch reports whether every guard condition held on the last
	// update.
	IsMatch() bool

	// Values returns the candidate values from the last update.
	Values() []string

	// TokensUsed returns the names of tokens the rule references.
	TokensUsed() []string

	// PossibleValues returns every value the rule could assign, or nil
	// when the set is open.
	PossibleValues() []string
}

// ScopeContext owns one mod scope's tokens: a static registry, a dynamic
// registry, the dependency graph between them, and the update pass that
// keeps values fresh as upstream state changes.
//
// All reads go through the composite chain (parent, then static, then
// dynamic). The parent is shared by reference across sibling scopes and is
// only ever queried, never mutated.
//
// Not safe for concurrent use: exactly one goroutine owns a ScopeContext,
// and callers serialize mutation relative to reads.
type ScopeContext struct {
	scope     string
	parent    tokens.Context
	composite *Composite

	statics  *registryLayer
	dynamics *registryLayer
	dynamic  map[tokens.Key]*DynamicToken

	// rules holds every registered rule across all dynamic tokens, in
	// registration order. Order is precedence: the last matching rule
	// wins at recompute time.
	rules []Rule

	graph   *DependencyGraph
	pending tokens.KeySet
	passIDs PassIDGenerator
}

// Option configures a ScopeContext.
type Option func(*ScopeContext)

// WithPassIDs replaces the update-pass ID generator.
// Tests use testutil.FixedPassIDs for deterministic log output.
func WithPassIDs(gen PassIDGenerator) Option {
	return func(c *ScopeContext) {
		c.passIDs = gen
	}
}

// NewScopeContext creates an empty context for the given scope, layered
// over the parent.
func NewScopeContext(scope string, parent tokens.Context, opts ...Option) *ScopeContext {
	c := &ScopeContext{
		scope:    scope,
		parent:   parent,
		statics:  newRegistryLayer(),
		dynamics: newRegistryLayer(),
		dynamic:  make(map[tokens.Key]*DynamicToken),
		graph:    NewDependencyGraph(),
		pending:  make(tokens.KeySet),
		passIDs:  UUIDv7Generator{},
	}
	c.composite = NewComposite(parent, c.statics, c.dynamics)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scope returns the context's namespace.
func (c *ScopeContext) Scope() string { return c.scope }

// AddStatic registers a token whose value is computed by its own logic.
//
// The token's scope must equal the context scope, its name must not
// contain the reserved argument separator, and the name must not collide
// with a parent token (ignoring enforcement) or an existing static token.
// Violations return a RegistrationError and leave the context unchanged.
//
// Immutable tokens compute their value once, here: the update pass leaves
// them untouched afterwards.
func (c *ScopeContext) AddStatic(tok tokens.Token) error {
	name := tok.Name()

	if tok.Scope() != c.scope {
		return newScopeMismatchError(c.scope, name, tok.Scope())
	}
	if strings.Contains(name, tokens.ArgSeparator) {
		return newReservedNameError(c.scope, name)
	}
	if c.parent.Contains(name, false) {
		return newParentCollisionError(c.scope, name)
	}
	key := tokens.KeyOf(name)
	if c.statics.has(key) {
		return newDuplicateTokenError(c.scope, name)
	}

	c.statics.add(tok)
	c.pending.Add(key)

	if !tok.IsMutable() {
		tok.UpdateContext(c.composite)
	}

	slog.Debug("static token registered",
		"scope", c.scope,
		"token", name,
		"mutable", tok.IsMutable(),
	)
	return nil
}

// AddDynamicRule registers one conditional value definition.
//
// The target name must not collide with a parent token or a static token.
// There is no duplicate check against other dynamic rules: multiple rules
// may target the same name, and the dynamic token is created lazily on the
// first one.
//
// Registration merges the rule's referenced-token and possible-value sets
// into the token's aggregate metadata, appends the rule to the ordered
// list, and grows the dependency graph by a breadth-first, visited-once
// traversal over everything the rule could transitively reference.
func (c *ScopeContext) AddDynamicRule(rule Rule) error {
	name := rule.Name()

	if c.parent.Contains(name, false) {
		return newParentCollisionError(c.scope, name)
	}
	key := tokens.KeyOf(name)
	if c.statics.has(key) {
		return newStaticCollisionError(c.scope, name)
	}

	tok, ok := c.dynamic[key]
	if !ok {
		tok = NewDynamicToken(name, c.scope)
		c.dynamic[key] = tok
		c.dynamics.add(tok)
	}

	tok.AddTokensUsed(rule.TokensUsed())
	tok.AddAllowedValues(rule.PossibleValues())
	c.rules = append(c.rules, rule)

	// A new rule must be evaluated on the next pass even if nothing
	// upstream changes, so the target rejoins the pending set.
	c.pending.Add(key)

	c.trackDependencies(key, rule.TokensUsed())

	slog.Debug("dynamic rule registered",
		"scope", c.scope,
		"token", name,
		"rules", len(c.rules),
	)
	return nil
}

// trackDependencies records owner as a dependent of every token the rule
// could transitively reference.
//
// The traversal is breadth-first and visited-once. For each visited name
// it looks the token up without enforcement and enqueues that token's
// referenced names; a dynamic token additionally contributes its
// possibly-used superset, because which tokens it references varies by
// which of its rules is active. The visited set tolerates cyclic
// references: each node is traversed once and the walk terminates.
func (c *ScopeContext) trackDependencies(owner tokens.Key, used []string) {
	queue := make([]tokens.Key, 0, len(used))
	for _, name := range used {
		queue = append(queue, tokens.KeyOf(name))
	}

	visited := make(tokens.KeySet)
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if visited.Has(key) {
			continue
		}
		visited.Add(key)

		c.graph.AddDependent(key, owner)

		tok := c.composite.GetToken(string(key), false)
		if tok == nil {
			continue
		}
		queue = append(queue, tok.TokensUsed()...)
		if dyn, ok := tok.(*DynamicToken); ok {
			for upstream := range dyn.PossiblyUsed() {
				queue = append(queue, upstream)
			}
		}
	}
}

// GetDependents returns the set of dynamic token keys recorded as
// dependents of the named token. The result is a copy, empty and non-nil
// when nothing depends on the name. Pure read, no side effects.
func (c *ScopeContext) GetDependents(name string) tokens.KeySet {
	return c.graph.Dependents(tokens.KeyOf(name))
}

// UpdateContext refreshes token values after upstream changes.
//
// changed lists the upstream token names whose values changed since the
// last pass. When both changed and the pending set are empty, or when the
// affected set works out empty, the call is a true no-op with zero side
// effects.
//
// Otherwise the pass runs to completion:
//
//  1. Mutable static tokens in the affected set recompute themselves
//     against the composite context.
//  2. Every dynamic token is cleared and marked not-ready. The reset is
//     deliberately unconditional: precedence depends on registration
//     order across the whole rule set, so a partial reset is unsafe.
//  3. Every rule re-evaluates in registration order; each ready, matching
//     rule assigns its values, so the last matching rule wins.
//  4. The pending set is cleared.
func (c *ScopeContext) UpdateContext(changed tokens.KeySet) {
	if changed.Len() == 0 && c.pending.Len() == 0 {
		return
	}

	affected := make(tokens.KeySet)
	for key := range changed {
		affected.AddAll(c.graph.Dependents(key))
	}
	affected.AddAll(c.pending)
	if affected.Len() == 0 {
		return
	}

	passID := c.passIDs.Generate()
	slog.Debug("update pass starting",
		"pass", passID,
		"scope", c.scope,
		"changed", changed.Len(),
		"affected", affected.Len(),
	)

	for _, key := range affected.Sorted() {
		tok := c.statics.get(key)
		if tok == nil || !tok.IsMutable() {
			continue
		}
		if tok.UpdateContext(c.composite) {
			slog.Debug("static token refreshed",
				"pass", passID,
				"scope", c.scope,
				"token", tok.Name(),
			)
		}
	}

	for _, tok := range c.dynamic {
		tok.SetValue(nil)
		tok.SetReady(false)
	}

	for _, rule := range c.rules {
		rule.UpdateContext(c.composite)
		if rule.IsReady() && rule.IsMatch() {
			tok := c.dynamic[tokens.KeyOf(rule.Name())]
			tok.SetValue(rule.Values())
			tok.SetReady(true)
		}
	}

	c.pending = make(tokens.KeySet)

	slog.Info("update pass complete",
		"pass", passID,
		"scope", c.scope,
		"affected", affected.Len(),
		"rules", len(c.rules),
	)
}

// Contains reports whether the name exists in any layer of the chain.
func (c *ScopeContext) Contains(name string, enforce bool) bool {
	return c.composite.Contains(name, enforce)
}

// GetToken returns the token from the highest-priority layer knowing it.
func (c *ScopeContext) GetToken(name string, enforce bool) tokens.Token {
	return c.composite.GetToken(name, enforce)
}

// GetTokens enumerates all visible tokens in layer priority order.
func (c *ScopeContext) GetTokens(enforce bool) iter.Seq[tokens.Token] {
	return c.composite.GetTokens(enforce)
}

// GetValues returns the named token's current values via the chain.
func (c *ScopeContext) GetValues(name string, input tokens.Input, enforce bool) []string {
	return c.composite.GetValues(name, input, enforce)
}

// IsModInstalled delegates to the parent context.
func (c *ScopeContext) IsModInstalled(id string) bool {
	return c.composite.IsModInstalled(id)
}

// LocalTokens enumerates only this scope's own tokens, static registry
// first, in registration order. Used by diagnostics output.
func (c *ScopeContext) LocalTokens() iter.Seq[tokens.Token] {
	return func(yield func(tokens.Token) bool) {
		for tok := range c.statics.GetTokens(false) {
			if !yield(tok) {
				return
			}
		}
		for tok := range c.dynamics.GetTokens(false) {
			if !yield(tok) {
				return
			}
		}
	}
}

// StaticCount returns the number of registered static tokens.
func (c *ScopeContext) StaticCount() int { return c.statics.len() }

// DynamicCount returns the number of dynamic tokens.
func (c *ScopeContext) DynamicCount() int { return c.dynamics.len() }

// RuleCount returns the number of registered rules.
func (c *ScopeContext) RuleCount() int { return len(c.rules) }

// PendingCount returns the number of names awaiting their first pass.
func (c *ScopeContext) PendingCount() int { return c.pending.Len() }
