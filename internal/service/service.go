// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives decoded
// input from the handler, runs the paired statements on the request
// transaction, commits, and triggers side effects such as low-stock alerts.
package service
