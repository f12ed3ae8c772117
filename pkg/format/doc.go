// Package format turns runtime values into display text. Every formatter is
// total: inputs a formatter cannot interpret are returned in their canonical
// string form instead of producing an error.
package format
