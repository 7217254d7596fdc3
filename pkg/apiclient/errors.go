package apiclient

import "errors"

var (
	// ErrRequestFailed indicates a non-2xx HTTP response. The wrapped error
	// carries the HTTP status text.
	ErrRequestFailed = errors.New("apiclient: request failed")

	// ErrInvalidEndpoint indicates the endpoint could not be resolved
	// against the client's base URL.
	ErrInvalidEndpoint = errors.New("apiclient: invalid endpoint")

	// ErrDecodeResponse indicates the response body could not be decoded.
	ErrDecodeResponse = errors.New("apiclient: failed to decode response body")

	// ErrEncodeRequest indicates the request body could not be encoded.
	ErrEncodeRequest = errors.New("apiclient: failed to encode request body")
)
