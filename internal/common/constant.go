package common

// AuthorizationHeaderName carries the session token on HTTP requests,
// prefixed with BearerPrefix.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-ID"
