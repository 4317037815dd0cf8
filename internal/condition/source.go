package condition

import (
	"slices"
	"strings"

	"github.com/modweave/modweave/internal/tokens"
)

// ValueSource produces the candidate values for a rule. Sources are
// re-resolved every update pass via UpdateContext; IsReady reports whether
// the last resolution produced usable values.
type ValueSource interface {
	// UpdateContext re-resolves the source against the current context.
	UpdateContext(ctx tokens.Context)

	// IsReady reports whether the source currently has usable values.
	IsReady() bool

	// Values returns the values from the last resolution.
	Values() []string

	// TokensUsed returns the names of tokens the source reads.
	TokensUsed() []string

	// PossibleValues returns every value the source could ever produce,
	// or nil when the set cannot be known statically.
	PossibleValues() []string
}

// Literal is a fixed value set. Always ready, references no tokens.
type Literal []string

// NewLiteral creates a literal value source.
func NewLiteral(values ...string) Literal {
	return Literal(values)
}

// UpdateContext is a no-op for literals.
func (l Literal) UpdateContext(tokens.Context) {}

// IsReady always reports true.
func (l Literal) IsReady() bool { return true }

// Values returns the literal values.
func (l Literal) Values() []string { return slices.Clone([]string(l)) }

// TokensUsed returns nil: literals reference no tokens.
func (l Literal) TokensUsed() []string { return nil }

// PossibleValues returns the literal values themselves.
func (l Literal) PossibleValues() []string { return slices.Clone([]string(l)) }

// TokenRef resolves to the current values of another token. The reference
// may carry a positional input argument ("Relationship:Abigail").
type TokenRef struct {
	token string
	input tokens.Input

	values []string
	ready  bool
}

// NewTokenRef creates a value source reading the named token. A name
// containing the positional-argument separator is split into token and
// input parts.
func NewTokenRef(ref string) *TokenRef {
	token, input, _ := strings.Cut(ref, tokens.ArgSeparator)
	return &TokenRef{token: token, input: tokens.Input{Raw: input}}
}

// UpdateContext re-reads the referenced token's values.
func (r *TokenRef) UpdateContext(ctx tokens.Context) {
	values := ctx.GetValues(r.token, r.input, true)
	r.values = values
	r.ready = values != nil
}

// IsReady reports whether the referenced token resolved on the last update.
func (r *TokenRef) IsReady() bool { return r.ready }

// Values returns the referenced token's values from the last update.
func (r *TokenRef) Values() []string { return slices.Clone(r.values) }

// TokensUsed returns the referenced token's name.
func (r *TokenRef) TokensUsed() []string { return []string{r.token} }

// PossibleValues returns nil: a reference's value set is open.
func (r *TokenRef) PossibleValues() []string { return nil }
