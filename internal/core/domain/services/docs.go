// Package services contains stateless domain services that span aggregates.
// NotificationFanOut maps committed state transitions to the notifications
// owed to each audience; the pricing subpackage holds the quote calculators.
package services
