// Package model holds the row types of the two persisted tables and the
// typed conversions from nullable storage columns to response values.
package model
