// Package tokens defines the sovereign types shared by every layer of the
// token system: token names and name sets, the Context lookup capability,
// the Token contract, and query inputs.
//
// Token names are compared ordinally and case-insensitively. Every map and
// set in the system is keyed by Key, the canonical folded form of a name,
// so two spellings of the same token can never diverge into separate
// entries.
//
// The package has no dependencies on the registry or condition layers;
// everything above imports tokens, never the other way around.
package tokens
