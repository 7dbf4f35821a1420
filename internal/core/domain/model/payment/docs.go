// Package payment implements the Payment aggregate: the single charge created
// at checkout that owns one or more order intents. Orders are materialized
// from the intents only when the provider verifies the charge, which keeps
// unpaid checkouts out of the order ledger entirely.
package payment
