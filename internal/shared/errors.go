package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrCredentialsMissing = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrTokenRefresh = fmt.Errorf("token acquisition failed")

	// API and conversion errors
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrUnsupportedModel  = fmt.Errorf("unsupported model")
	ErrMalformedResult   = fmt.Errorf("malformed remote result")
	ErrContractViolation = fmt.Errorf("remote contract violation")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
