package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: an initial world, a token
// pack, a sequence of update steps, and assertions on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Scope is the mod scope the context is created for.
	Scope string `yaml:"scope"`

	// Parent lists the parent context's initial token values.
	Parent map[string][]string `yaml:"parent,omitempty"`

	// Mods lists mod IDs reported as installed by the parent.
	Mods []string `yaml:"mods,omitempty"`

	// Statics declares the pack's static tokens.
	Statics []StaticDef `yaml:"statics,omitempty"`

	// Rules declares the pack's dynamic rules, in precedence order.
	Rules []RuleDef `yaml:"rules,omitempty"`

	// Steps are update passes applied after the initial one.
	Steps []Step `yaml:"steps,omitempty"`

	// Assert lists expected final token states.
	Assert []TokenAssertion `yaml:"assert,omitempty"`
}

// StaticDef declares a constant-valued static token.
type StaticDef struct {
	Name    string   `yaml:"name"`
	Values  []string `yaml:"values"`
	Mutable bool     `yaml:"mutable,omitempty"`
}

// RuleDef declares one dynamic rule. Exactly one of Values or Ref supplies
// the value.
type RuleDef struct {
	Token  string    `yaml:"token"`
	Values []string  `yaml:"values,omitempty"`
	Ref    string    `yaml:"ref,omitempty"`
	When   []CondDef `yaml:"when,omitempty"`
}

// CondDef gates a rule on a token holding one of the given values.
// Conditions are a list, not a map, so their order survives YAML parsing.
type CondDef struct {
	Token  string   `yaml:"token"`
	Values []string `yaml:"values"`
}

// Step mutates the parent context and runs an update pass. The changed
// set reported to the pass is the union of Set's keys and Changed.
type Step struct {
	// Set replaces parent token values (creating tokens as needed).
	Set map[string][]string `yaml:"set,omitempty"`

	// Changed lists extra upstream names to report as changed, for
	// passes where the changed set should diverge from the mutation.
	Changed []string `yaml:"changed,omitempty"`
}

// TokenAssertion checks a token's final state. A nil Ready skips the
// readiness check; a nil Values slice skips the value check.
type TokenAssertion struct {
	Token  string   `yaml:"token"`
	Ready  *bool    `yaml:"ready,omitempty"`
	Values []string `yaml:"values,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := scenario.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Scope == "" {
		return fmt.Errorf("scope is required")
	}
	if len(s.Statics) == 0 && len(s.Rules) == 0 {
		return fmt.Errorf("scenario declares no tokens")
	}
	for i, rule := range s.Rules {
		if rule.Token == "" {
			return fmt.Errorf("rule %d: token is required", i)
		}
		if len(rule.Values) == 0 && rule.Ref == "" {
			return fmt.Errorf("rule %d: values or ref is required", i)
		}
		if len(rule.Values) > 0 && rule.Ref != "" {
			return fmt.Errorf("rule %d: values and ref are mutually exclusive", i)
		}
	}
	for i, static := range s.Statics {
		if static.Name == "" {
			return fmt.Errorf("static %d: name is required", i)
		}
		if len(static.Values) == 0 {
			return fmt.Errorf("static %d: values is required", i)
		}
	}
	return nil
}
