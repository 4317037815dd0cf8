// Package compiler turns CUE content-pack definitions into token and rule
// declarations ready to register into a scope context.
//
// A pack file declares one scope's tokens:
//
//	pack: {
//		scope: "example.weather"
//		statics: [
//			{name: "Climate", values: ["temperate"]},
//		]
//		rules: [
//			{token: "Mood", values: ["happy"], when: [{token: "Weather", values: ["Sun"]}]},
//			{token: "Echo", ref: "Season"},
//		]
//	}
//
// Rule order in the file is registration order, which is precedence order
// at recompute time. The compiler preserves it exactly.
package compiler

import (
	"cuelang.org/go/cue"
)

// PackSpec is a compiled content pack: one scope's static token and
// dynamic rule declarations, in file order.
type PackSpec struct {
	Scope   string       `json:"scope"`
	Statics []StaticDecl `json:"statics,omitempty"`
	Rules   []RuleDecl   `json:"rules,omitempty"`
}

// StaticDecl declares a constant-valued static token.
type StaticDecl struct {
	Name    string   `json:"name"`
	Values  []string `json:"values"`
	Mutable bool     `json:"mutable,omitempty"`
}

// RuleDecl declares one conditional value for a dynamic token. Exactly one
// of Values (literal) or Ref (token reference) supplies the value.
type RuleDecl struct {
	Token  string          `json:"token"`
	Values []string        `json:"values,omitempty"`
	Ref    string          `json:"ref,omitempty"`
	When   []ConditionDecl `json:"when,omitempty"`
}

// ConditionDecl gates a rule on a token holding one of the given values.
type ConditionDecl struct {
	Token  string   `json:"token"`
	Values []string `json:"values"`
}

// CompilePack parses a CUE value into a PackSpec.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the pack struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`pack: {scope: "x", ...}`)
//	spec, err := CompilePack(v.LookupPath(cue.ParsePath("pack")))
func CompilePack(v cue.Value) (*PackSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &PackSpec{}

	scopeVal := v.LookupPath(cue.ParsePath("scope"))
	if !scopeVal.Exists() {
		return nil, &CompileError{
			Field:   "scope",
			Message: "scope is required",
			Pos:     v.Pos(),
		}
	}
	scope, err := scopeVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if scope == "" {
		return nil, &CompileError{
			Field:   "scope",
			Message: "scope must not be empty",
			Pos:     scopeVal.Pos(),
		}
	}
	spec.Scope = scope

	spec.Statics, err = parseStatics(v)
	if err != nil {
		return nil, err
	}

	spec.Rules, err = parseRules(v)
	if err != nil {
		return nil, err
	}

	if len(spec.Statics) == 0 && len(spec.Rules) == 0 {
		return nil, &CompileError{
			Field:   "pack",
			Message: "pack declares no tokens",
			Pos:     v.Pos(),
		}
	}

	return spec, nil
}

func parseStatics(v cue.Value) ([]StaticDecl, error) {
	listVal := v.LookupPath(cue.ParsePath("statics"))
	if !listVal.Exists() {
		return nil, nil
	}

	items, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var decls []StaticDecl
	for items.Next() {
		decl, err := parseStatic(items.Value())
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func parseStatic(v cue.Value) (StaticDecl, error) {
	decl := StaticDecl{}

	name, err := requiredString(v, "name")
	if err != nil {
		return decl, err
	}
	decl.Name = name

	decl.Values, err = requiredStringList(v, "values")
	if err != nil {
		return decl, err
	}

	mutableVal := v.LookupPath(cue.ParsePath("mutable"))
	if mutableVal.Exists() {
		mutable, err := mutableVal.Bool()
		if err != nil {
			return decl, formatCUEError(err)
		}
		decl.Mutable = mutable
	}

	return decl, nil
}

func parseRules(v cue.Value) ([]RuleDecl, error) {
	listVal := v.LookupPath(cue.ParsePath("rules"))
	if !listVal.Exists() {
		return nil, nil
	}

	items, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var decls []RuleDecl
	for items.Next() {
		decl, err := parseRule(items.Value())
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func parseRule(v cue.Value) (RuleDecl, error) {
	decl := RuleDecl{}

	token, err := requiredString(v, "token")
	if err != nil {
		return decl, err
	}
	decl.Token = token

	valuesVal := v.LookupPath(cue.ParsePath("values"))
	refVal := v.LookupPath(cue.ParsePath("ref"))
	switch {
	case valuesVal.Exists() && refVal.Exists():
		return decl, &CompileError{
			Field:   "rule",
			Message: "rule must declare values or ref, not both",
			Pos:     v.Pos(),
		}
	case valuesVal.Exists():
		decl.Values, err = requiredStringList(v, "values")
		if err != nil {
			return decl, err
		}
	case refVal.Exists():
		ref, err := refVal.String()
		if err != nil {
			return decl, formatCUEError(err)
		}
		decl.Ref = ref
	default:
		return decl, &CompileError{
			Field:   "rule",
			Message: "rule must declare a values list or a ref",
			Pos:     v.Pos(),
		}
	}

	decl.When, err = parseWhen(v)
	if err != nil {
		return decl, err
	}

	return decl, nil
}

func parseWhen(v cue.Value) ([]ConditionDecl, error) {
	listVal := v.LookupPath(cue.ParsePath("when"))
	if !listVal.Exists() {
		return nil, nil
	}

	items, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var decls []ConditionDecl
	for items.Next() {
		item := items.Value()
		token, err := requiredString(item, "token")
		if err != nil {
			return nil, err
		}
		values, err := requiredStringList(item, "values")
		if err != nil {
			return nil, err
		}
		decls = append(decls, ConditionDecl{Token: token, Values: values})
	}
	return decls, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	if s == "" {
		return "", &CompileError{
			Field:   field,
			Message: field + " must not be empty",
			Pos:     fieldVal.Pos(),
		}
	}
	return s, nil
}

func requiredStringList(v cue.Value, field string) ([]string, error) {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil, &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}

	items, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var values []string
	for items.Next() {
		s, err := items.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		values = append(values, s)
	}
	if len(values) == 0 {
		return nil, &CompileError{
			Field:   field,
			Message: field + " must not be empty",
			Pos:     listVal.Pos(),
		}
	}
	return values, nil
}
