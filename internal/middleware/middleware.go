// Package middleware stores the Echo middleware of the HTTP adapter.
//
// These intercept requests to handle cross-cutting concerns such as request
// ids, request logging, tracing and panic recovery. CORS is answered by the
// db-api handler itself so both adapters behave the same.
package middleware
