// Package client is a thin HTTP client for the userkeeper API.
//
// Transport failures are reported as ErrUnavailable, 401 replies as
// ErrUnauthorized and 404 replies as ErrNotFound; any other non-2xx reply is
// an *APIError carrying the server's message. Match with errors.Is and
// errors.As.
package client
