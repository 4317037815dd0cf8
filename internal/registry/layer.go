package registry

import (
	"iter"

	"github.com/modweave/modweave/internal/tokens"
)

// registryLayer is an insertion-ordered token map exposing the Context
// lookup capability, so the static and dynamic registries can sit in the
// composite chain alongside the parent.
type registryLayer struct {
	order []tokens.Key
	byKey map[tokens.Key]tokens.Token
}

func newRegistryLayer() *registryLayer {
	return &registryLayer{byKey: make(map[tokens.Key]tokens.Token)}
}

func (l *registryLayer) add(tok tokens.Token) {
	key := tokens.KeyOf(tok.Name())
	if _, exists := l.byKey[key]; !exists {
		l.order = append(l.order, key)
	}
	l.byKey[key] = tok
}

func (l *registryLayer) get(key tokens.Key) tokens.Token {
	return l.byKey[key]
}

func (l *registryLayer) has(key tokens.Key) bool {
	_, ok := l.byKey[key]
	return ok
}

func (l *registryLayer) len() int {
	return len(l.order)
}

// Contains reports whether the named token is registered in this layer.
func (l *registryLayer) Contains(name string, enforce bool) bool {
	return l.has(tokens.KeyOf(name))
}

// GetToken returns the registered token, or nil.
func (l *registryLayer) GetToken(name string, enforce bool) tokens.Token {
	return l.byKey[tokens.KeyOf(name)]
}

// GetTokens enumerates tokens in registration order.
func (l *registryLayer) GetTokens(enforce bool) iter.Seq[tokens.Token] {
	return func(yield func(tokens.Token) bool) {
		for _, key := range l.order {
			if !yield(l.byKey[key]) {
				return
			}
		}
	}
}

// GetValues returns the named token's current values, or nil when the
// token is absent or not ready.
func (l *registryLayer) GetValues(name string, input tokens.Input, enforce bool) []string {
	tok := l.byKey[tokens.KeyOf(name)]
	if tok == nil || !tok.IsReady() {
		return nil
	}
	return tok.GetValues(input)
}

// IsModInstalled always reports false; mod-presence queries belong to the
// parent context and never reach a registry layer through the composite.
func (l *registryLayer) IsModInstalled(id string) bool {
	return false
}
