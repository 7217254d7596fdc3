package jmap

import "errors"

var (
	// ErrNoMailAccount indicates the session document lists no primary
	// account for the mail capability.
	ErrNoMailAccount = errors.New("jmap: session has no primary mail account")

	// ErrNoDraftsMailbox indicates no mailbox with the drafts role exists.
	ErrNoDraftsMailbox = errors.New("jmap: no drafts mailbox found")

	// ErrMalformedInvocation indicates a method call or response was not a
	// three-element array.
	ErrMalformedInvocation = errors.New("jmap: malformed invocation")

	// ErrUnexpectedResponse indicates the server response did not contain
	// the expected method response.
	ErrUnexpectedResponse = errors.New("jmap: unexpected response shape")
)
