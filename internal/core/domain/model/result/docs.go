// Package result contains the outcome of a discount run.
package result
