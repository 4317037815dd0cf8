package tokens

import "iter"

// Input carries the positional argument of a token query, e.g. the
// "Abigail" in "Relationship:Abigail". Most queries pass NoInput.
type Input struct {
	Raw string
}

// NoInput is the empty query input.
var NoInput = Input{}

// IsEmpty reports whether the input carries no argument.
func (in Input) IsEmpty() bool {
	return in.Raw == ""
}

// Context is the lookup capability shared by every layer of the composite
// chain: the parent context, the static registry, and the dynamic registry
// all answer the same four queries.
//
// The enforce flag controls whether scope/readiness restrictions apply to
// the lookup. Registration-time collision checks pass enforce=false so a
// name shadowed by an unready token still counts as taken.
type Context interface {
	// Contains reports whether a token with the given name exists.
	Contains(name string, enforce bool) bool

	// GetToken returns the token with the given name, or nil if absent.
	GetToken(name string, enforce bool) Token

	// GetTokens enumerates all tokens in this layer. The sequence is lazy
	// and single-pass; callers must not range over it twice.
	GetTokens(enforce bool) iter.Seq[Token]

	// GetValues returns the current values of the named token, or nil if
	// the token is absent or not ready.
	GetValues(name string, input Input, enforce bool) []string

	// IsModInstalled reports whether the given mod ID is loaded.
	IsModInstalled(id string) bool
}

// Empty is a Context with no tokens and no installed mods. It stands in
// for the parent when a scope is evaluated without a host, e.g. from the
// CLI.
var Empty Context = emptyContext{}

type emptyContext struct{}

func (emptyContext) Contains(string, bool) bool             { return false }
func (emptyContext) GetToken(string, bool) Token            { return nil }
func (emptyContext) GetValues(string, Input, bool) []string { return nil }
func (emptyContext) IsModInstalled(string) bool             { return false }

func (emptyContext) GetTokens(bool) iter.Seq[Token] {
	return func(func(Token) bool) {}
}

// Token is a named symbolic value.
//
// A token is "ready" when it currently has a usable value; not-ready is a
// valid steady state (e.g. a value waiting on an unmet condition), never an
// error.
type Token interface {
	// Name returns the token's display name.
	Name() string

	// Scope returns the namespace of the owning mod.
	Scope() string

	// IsMutable reports whether the token's value can change between
	// update passes. Immutable tokens are computed once and never
	// refreshed.
	IsMutable() bool

	// IsReady reports whether the token currently has a usable value.
	IsReady() bool

	// GetValues returns the token's current values for the given input.
	// Returns nil when not ready.
	GetValues(input Input) []string

	// TokensUsed returns the canonical keys of the tokens this token's
	// value computation references.
	TokensUsed() []Key

	// UpdateContext recomputes the token's value against the given
	// context and reports whether the value changed. Idempotent when
	// upstream state is unchanged.
	UpdateContext(ctx Context) bool
}
