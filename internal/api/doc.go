// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It translates HTTP concerns into calls on the
// study service and never exposes raw internal errors to clients.
package api
