// Package jmap is a minimal JMAP mail client covering what the digest
// workflow needs: session discovery, drafts-mailbox and identity lookups,
// and batched draft creation.
//
// The session document is discovered once at /.well-known/jmap with basic
// auth credentials and cached; all method calls are batched POSTs to the
// session's apiUrl. Method calls and responses travel as three-element JSON
// arrays ([name, arguments, callId]) modeled by the Invocation type.
//
// This is not a full mail client: no mailbox sync, no blob upload, no
// submission. Drafts are created with one Email/set create per email, using
// call IDs email0, email1, and so on.
package jmap
