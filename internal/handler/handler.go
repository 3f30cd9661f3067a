// Package handler is the first layer after the transport.
//
// DBAPIHandler implements the db-api contract on platform-neutral
// event.Request / event.Response values: preflight, configuration check,
// routing on (method, table) or (method, action), body coercion and the
// call into the service layer. The Echo and serverless adapters only
// translate their own request representation.
package handler
