package digest

import "errors"

var (
	// ErrNoRecipients is returned when a send is attempted with an empty
	// recipient set. No network call is made.
	ErrNoRecipients = errors.New("no recipients selected")

	// ErrUnknownProvider is returned when the registry has no provider
	// registered under the requested name.
	ErrUnknownProvider = errors.New("unknown digest provider")

	// ErrNoIdentity is returned when the mail account exposes no sending
	// identity to create drafts from.
	ErrNoIdentity = errors.New("no sending identity available")

	// ErrItemImageMismatch is returned when a render is given an image set
	// that does not line up with the item list.
	ErrItemImageMismatch = errors.New("image set does not match item list")
)
