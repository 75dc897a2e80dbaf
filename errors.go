package fogbugz

import "github.com/kailas-cloud/go-fogbugz/internal/transport"

// Sentinel errors re-exported from the transport layer.
// Use errors.Is() to check.
var (
	ErrNotLoggedOn      = transport.ErrNotLoggedOn
	ErrArgumentRequired = transport.ErrArgumentRequired
)

// APIError is a failure reported by the remote API. Returned errors wrap
// it, so errors.As works from any SDK call.
type APIError = transport.APIError

// ErrorDetail is one entry of an API error response.
type ErrorDetail = transport.ErrorDetail
