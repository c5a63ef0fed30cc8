// Package lending enforces the borrow/return state machine between members and catalog items.
//
// Each item is either available or borrowed by exactly one member. A [Ledger] is built over a
// [catalog.Registry] with one explicit [ReturnPolicy]:
//
//  1. [ReturnExplicit] : members return a named item from any position via [Ledger.Return]
//  2. [ReturnOldest] : members return their oldest loan first via [Ledger.ReturnOldest]
//
// The operation of the other policy reports [shared.ErrReturnPolicyMismatch].
// Every refusal (unavailable item, unknown member, item not held, nothing to return) is a plain
// error wrapping a sentinel from the shared package and leaves all state unchanged.
package lending
