// Package ledgerservice implements the shared trip ledger inside the
// trip-finance context.
//
// The module owns expense creation with policy-driven split computation,
// derived balance aggregation, the greedy settlement suggestion pass, and the
// advisory settlement-claim check on confirmation. Business rules live in
// domain/application layers; infrastructure sits behind ports and adapters.
package ledgerservice
