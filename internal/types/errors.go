package types

import "errors"

// Error taxonomy for the resolution pipeline. Provider clients return these
// as sentinels instead of letting transport errors escape their boundary;
// orchestrators treat every one of them as "try the next fallback source".
var (
	// ErrNotFound means no provider had data for the query.
	ErrNotFound = errors.New("not found")

	// ErrProviderUnavailable covers non-2xx responses and network failures.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited is returned on HTTP 429 after retries are exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrInvalidInput covers too-short queries and missing coordinates.
	ErrInvalidInput = errors.New("invalid input")
)
