// Package zone contains the geographic pricing buckets a shipment destination
// resolves to.
//
// A PricingZone is identified by a code (for example "local" or "eu-west"),
// classified by a ZoneType, and may be matched either by country or by a set
// of postal-code ranges. Postal-range matches always outrank country matches.
//
// Resolution records the zone that was selected together with the method that
// selected it, so a price can be traced back to the rule that chose its zone.
package zone
