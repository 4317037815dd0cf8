// Package condition implements the guard and value machinery consumed by
// dynamic token rules: value sources that re-resolve against the composite
// context, conditions that gate a rule on another token's current values,
// and the Rule type binding them to a target token.
//
// Nothing here evaluates a general expression language. Value sources are
// literals or single-token references; conditions compare a token's current
// values to an allowed set. A source or condition that cannot currently
// resolve is not-ready, which is an expected steady state rather than an
// error.
package condition
