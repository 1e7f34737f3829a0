package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig   = fmt.Errorf("configuration not found")
	ErrInvalidConfig   = fmt.Errorf("invalid configuration")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Capture lifecycle errors
	ErrAlreadyRunning     = fmt.Errorf("oauth listener already running")
	ErrListenerNotStarted = fmt.Errorf("oauth listener not started")
	ErrListenerClosed     = fmt.Errorf("oauth listener closed")
	ErrTimeout            = fmt.Errorf("oauth listener timed out")
	ErrBindFailure        = fmt.Errorf("failed to bind loopback listener")
	ErrUnsupportedAddress = fmt.Errorf("unsupported listener address")

	// Fetch and cache errors
	ErrHTTPStatus         = fmt.Errorf("unexpected HTTP status")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrCacheDisabled      = fmt.Errorf("fetch cache is disabled")
)
