// Package rate contains the carrier tariff model: weight rules that turn a
// chargeable weight into a base price, and carrier capability profiles that
// decide whether a carrier can take a shipment at all.
//
// Weight ranges are half-open: a rule with From=5 and To=10 covers 5 kg up to
// but not including 10 kg. A nil To means the range is unbounded.
package rate
