// Package addon models the optional services a shipment can be booked with
// (insurance, cash on delivery, notifications, weekend delivery). Each one is
// priced on its own and added to the subtotal before discounts run.
package addon
