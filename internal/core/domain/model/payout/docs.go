// Package payout implements the two payout aggregates: VendorPayout (per
// completed order, 90% of the goods value, created exactly once per
// payment+order pair) and RiderPayout (weekly aggregate of delivered tasks at
// a flat per-delivery rate, unique per rider and ISO week). Both rely on
// storage uniqueness constraints as their idempotency keys rather than on
// application-level locking.
package payout
