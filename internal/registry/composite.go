package registry

import (
	"iter"

	"github.com/modweave/modweave/internal/tokens"
)

// Composite is an ordered chain of lookup layers consulted in priority
// order. The first layer that knows a name answers; callers never learn
// which layer that was.
type Composite struct {
	parent tokens.Context
	layers []tokens.Context
}

// NewComposite builds a chain with the parent as the highest-priority
// layer, followed by the extra layers in the order given.
func NewComposite(parent tokens.Context, layers ...tokens.Context) *Composite {
	all := make([]tokens.Context, 0, len(layers)+1)
	all = append(all, parent)
	all = append(all, layers...)
	return &Composite{parent: parent, layers: all}
}

// Contains reports whether any layer knows the name. Short-circuits on the
// first affirmative layer.
func (c *Composite) Contains(name string, enforce bool) bool {
	for _, layer := range c.layers {
		if layer.Contains(name, enforce) {
			return true
		}
	}
	return false
}

// GetToken returns the token from the first layer whose lookup succeeds.
func (c *Composite) GetToken(name string, enforce bool) tokens.Token {
	for _, layer := range c.layers {
		if tok := layer.GetToken(name, enforce); tok != nil {
			return tok
		}
	}
	return nil
}

// GetValues forwards the value lookup to whichever layer owns the token,
// in the same priority order as GetToken.
func (c *Composite) GetValues(name string, input tokens.Input, enforce bool) []string {
	for _, layer := range c.layers {
		if layer.GetToken(name, enforce) != nil {
			return layer.GetValues(name, input, enforce)
		}
	}
	return nil
}

// GetTokens concatenates each layer's enumeration in priority order. The
// sequence is lazy and single-pass.
func (c *Composite) GetTokens(enforce bool) iter.Seq[tokens.Token] {
	return func(yield func(tokens.Token) bool) {
		for _, layer := range c.layers {
			for tok := range layer.GetTokens(enforce) {
				if !yield(tok) {
					return
				}
			}
		}
	}
}

// IsModInstalled always delegates to the parent context.
func (c *Composite) IsModInstalled(id string) bool {
	return c.parent.IsModInstalled(id)
}
