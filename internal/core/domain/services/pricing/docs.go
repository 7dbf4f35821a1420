// Package pricing contains the quote calculators. A deployment runs exactly
// one calculator, selected by configuration: the landmark model scales the
// delivery fee with the number of vendors in the cart, the state model
// charges a flat per-state fee. The two models also differ on whether the
// delivery fee is part of the VAT base.
package pricing
