// Package rulecontext holds the immutable calculation context a discount run
// is evaluated against.
//
// A Context is built once per calculation. The With* methods return modified
// copies; the receiver is never changed, so a base context can be enriched
// with customer data or promo codes while other goroutines keep reading it.
package rulecontext
