package imagehost

import "errors"

var (
	// ErrInvalidConfig indicates host configuration is incomplete.
	ErrInvalidConfig = errors.New("imagehost: invalid config")

	// ErrUploadFailed indicates the image could not be uploaded.
	ErrUploadFailed = errors.New("imagehost: upload failed")
)
