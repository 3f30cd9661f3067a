// Package errs defines the error type every response path converges on.
//
// Its purpose is to give the client one consistent error shape:
//
//	{ "error": "<message>" }
//
// while still carrying a machine code and the HTTP status for logs.
package errs
