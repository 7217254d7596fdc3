// Package staleguard implements the last-call-wins discard discipline used
// to keep out-of-order asynchronous completions from overwriting newer
// application state.
//
// Each cancellable operation category (connect-to-server, fetch-library-
// sections, fetch-recently-added) owns a single mutable "last token" slot.
// An invocation mints a fresh token with Begin before the asynchronous call
// starts; when the call resolves, the result is applied only if Current
// still reports the token as the slot owner. Staleness is not an error;
// stale completions are discarded silently.
//
//	token := guard.Begin("recentlyAdded")
//	items, err := fetch(ctx)
//	if guard.Current(token) {
//	    state.RecentlyAdded = items
//	}
package staleguard
