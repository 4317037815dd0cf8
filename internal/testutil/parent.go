package testutil

import (
	"iter"
	"slices"

	"github.com/modweave/modweave/internal/tokens"
)

// FakeParent is a scriptable parent context for tests. Token values are set
// directly; every token is ready, mutable, and scoped to the parent's
// scope string.
//
// Not safe for concurrent use; tests own it from a single goroutine, the
// same discipline the real parent context assumes.
type FakeParent struct {
	scope string
	order []tokens.Key
	byKey map[tokens.Key]*parentToken
	mods  map[string]bool
}

// NewFakeParent creates an empty fake parent with the given scope.
func NewFakeParent(scope string) *FakeParent {
	return &FakeParent{
		scope: scope,
		byKey: make(map[tokens.Key]*parentToken),
		mods:  make(map[string]bool),
	}
}

// Set creates or replaces a parent token with the given values.
func (p *FakeParent) Set(name string, values ...string) {
	key := tokens.KeyOf(name)
	if existing, ok := p.byKey[key]; ok {
		existing.values = slices.Clone(values)
		return
	}
	p.byKey[key] = &parentToken{name: name, scope: p.scope, values: slices.Clone(values)}
	p.order = append(p.order, key)
}

// InstallMod marks a mod ID as installed.
func (p *FakeParent) InstallMod(id string) {
	p.mods[id] = true
}

// Contains reports whether the named token exists.
func (p *FakeParent) Contains(name string, enforce bool) bool {
	_, ok := p.byKey[tokens.KeyOf(name)]
	return ok
}

// GetToken returns the named token, or nil.
func (p *FakeParent) GetToken(name string, enforce bool) tokens.Token {
	tok, ok := p.byKey[tokens.KeyOf(name)]
	if !ok {
		return nil
	}
	return tok
}

// GetTokens enumerates tokens in insertion order.
func (p *FakeParent) GetTokens(enforce bool) iter.Seq[tokens.Token] {
	return func(yield func(tokens.Token) bool) {
		for _, key := range p.order {
			if !yield(p.byKey[key]) {
				return
			}
		}
	}
}

// GetValues returns the named token's values, or nil if absent.
func (p *FakeParent) GetValues(name string, input tokens.Input, enforce bool) []string {
	tok, ok := p.byKey[tokens.KeyOf(name)]
	if !ok {
		return nil
	}
	return tok.GetValues(input)
}

// IsModInstalled reports whether InstallMod was called for the ID.
func (p *FakeParent) IsModInstalled(id string) bool {
	return p.mods[id]
}

// parentToken is the always-ready token backing FakeParent entries.
type parentToken struct {
	name   string
	scope  string
	values []string
}

func (t *parentToken) Name() string                      { return t.name }
func (t *parentToken) Scope() string                     { return t.scope }
func (t *parentToken) IsMutable() bool                   { return true }
func (t *parentToken) IsReady() bool                     { return true }
func (t *parentToken) GetValues(tokens.Input) []string   { return slices.Clone(t.values) }
func (t *parentToken) TokensUsed() []tokens.Key          { return nil }
func (t *parentToken) UpdateContext(tokens.Context) bool { return false }
