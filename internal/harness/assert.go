package harness

import (
	"fmt"
	"slices"

	"github.com/modweave/modweave/internal/registry"
	"github.com/modweave/modweave/internal/tokens"
)

// evaluateAssertions checks each declared expectation against the final
// context state and returns one message per failed assertion.
func evaluateAssertions(scenario *Scenario, sc *registry.ScopeContext) []string {
	var failures []string
	for _, a := range scenario.Assert {
		tok := sc.GetToken(a.Token, false)
		if tok == nil {
			failures = append(failures, fmt.Sprintf("token %s: not found", a.Token))
			continue
		}
		if a.Ready != nil && tok.IsReady() != *a.Ready {
			failures = append(failures, fmt.Sprintf("token %s: ready = %v, want %v",
				a.Token, tok.IsReady(), *a.Ready))
		}
		if a.Values != nil {
			got := tok.GetValues(tokens.NoInput)
			if !slices.Equal(got, a.Values) {
				failures = append(failures, fmt.Sprintf("token %s: values = %v, want %v",
					a.Token, got, a.Values))
			}
		}
	}
	return failures
}
