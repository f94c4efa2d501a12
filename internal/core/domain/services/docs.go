// Package services provides the pricing domain services. Apart from the quote
// cache they hold no mutable state and are safe for concurrent use.
//
// The package includes:
//   - ZoneResolver: maps a destination to a pricing zone and records how it matched
//   - RateCalculator: picks the weight rule for a shipment and prices it
//   - RuleValidator: checks weight and discount rules for overlaps and malformed values
//   - DiscountEngine: applies adjustments, contract, tiered, promotional, seasonal,
//     volume and progressive discounts in a fixed stage order
//   - ContextFactory: builds the rule evaluation context for one shipment
//   - ConditionEvaluator: compiles and evaluates CEL rule conditions
//   - QuoteCache: memoizes quotes for a short time
package services
