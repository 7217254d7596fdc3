package mjml

import "errors"

var (
	// ErrFragmentNotFound indicates the fragment source has no fragment
	// with the requested name.
	ErrFragmentNotFound = errors.New("mjml: fragment not found")

	// ErrNoSource indicates a Template was constructed without a fragment source.
	ErrNoSource = errors.New("mjml: template has no fragment source")

	// ErrCompileFailed indicates the MJML markup could not be compiled to HTML.
	ErrCompileFailed = errors.New("mjml: failed to compile markup")

	// ErrInvalidConfig indicates compiler configuration is incomplete.
	ErrInvalidConfig = errors.New("mjml: invalid compiler config")
)
