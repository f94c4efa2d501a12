// Package kernel provides core domain primitives for the pricing system.
// It implements the fundamental building blocks shared by zones, rates and
// discount rules.
//
// The package includes:
//   - Money and Currency: exact decimal amounts with an ISO-4217 currency, rounded to 2 decimals
//   - Weight and Dimensions: shipment geometry with volumetric weight support
//   - ServiceType: the service levels a shipment can be priced for
//   - GeoPoint: a validated latitude/longitude pair with great-circle distance
//   - UUID: a value object for unique identifiers
//
// Every value object is immutable. Values built through their constructors are
// always valid; zero values fail Validate where a guard is present. All of them
// are safe to share between goroutines.
package kernel
