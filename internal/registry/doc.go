// Package registry implements the layered, dependency-tracked token
// evaluation context.
//
// A ScopeContext owns one mod scope's tokens. Reads go through a composite
// chain that consults the parent context, the static registry, and the
// dynamic registry in that fixed priority order; the caller never knows
// which layer answered. Writes are the two registration operations
// (AddStatic, AddDynamicRule) and the update pass (UpdateContext).
//
// ARCHITECTURE:
//
// Single-Owner Update Pass:
// All mutation runs synchronously on the owning goroutine. There is no
// internal locking; callers serialize registration and updates relative to
// reads. An update pass always runs to completion once triggered.
//
// Update Pass Flow:
//  1. Changed upstream names plus the pending set decide whether work is
//     needed at all; an empty affected set is a true no-op.
//  2. Mutable static tokens in the affected set recompute themselves.
//  3. Every dynamic token is reset to empty and not-ready.
//  4. Every rule re-evaluates in registration order; the last rule whose
//     conditions hold and whose value is ready wins.
//
// CRITICAL PATTERNS:
//
// Registration order is precedence. The rules slice order never changes
// after append, and recomputation always walks the whole slice. Shortcuts
// over the affected subset would break last-match-wins across rule sets,
// so the reset and re-evaluation are deliberately unconditional.
//
// The dependency graph over-approximates. A dynamic token's active
// dependencies vary by which rule currently matches, so graph construction
// traverses the union of everything any rule could reference. Extra
// recomputation is acceptable; a missed invalidation is not.
package registry
