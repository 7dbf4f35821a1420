// Package order implements the Order Ledger aggregate: the per-vendor order
// line created at checkout and driven through its lifecycle by payment
// verification, vendor decisions, and the delivery dispatch machine.
//
// The package includes:
//   - Order: the aggregate root holding identity, pricing shares and lifecycle
//   - Status: the state machine enforcing valid lifecycle transitions
//   - Type: the menu (delivery) vs service (pickup) fulfillment flows
//
// Key business rules:
//   - Pending→Paid happens only through payment-provider verification and is
//     idempotent against re-delivered verification events
//   - Paid→Accepted / →Rejected are single-writer vendor decisions
//   - Rejected, Completed and Cancelled are terminal; any attempt to move out
//     of them fails with ErrOrderAlreadyTerminal
package order
