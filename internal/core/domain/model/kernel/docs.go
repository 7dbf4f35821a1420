// Package kernel contains the shared value objects of the fulfillment domain:
// UUID identifiers, Money amounts, and geographic Zones.
//
// All kernel types are immutable value objects. Their zero values are invalid;
// instances must be created through the provided constructors, which validate
// their inputs. Validate() can be called on any instance to verify it was
// properly constructed, which matters when reconstructing domain objects from
// persistence or external input.
package kernel
