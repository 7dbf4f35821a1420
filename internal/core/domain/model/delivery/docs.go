// Package delivery implements the dispatch aggregate: the DeliveryTask that
// tracks a delivery order from vendor handoff to the customer's door. Tasks
// are matched to riders by zone equality, claimed atomically (exactly one
// concurrent claimant wins), and progressed only by the assigned rider.
package delivery
