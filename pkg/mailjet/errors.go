package mailjet

import "errors"

var (
	// ErrProfileNotFound indicates the profile lookup returned zero results.
	ErrProfileNotFound = errors.New("mailjet: profile not found")

	// ErrSendFailed indicates the send API reported a non-success status
	// for at least one message.
	ErrSendFailed = errors.New("mailjet: send failed")
)
