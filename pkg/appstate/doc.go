// Package appstate holds the application's durable settings and the
// orchestration operations around them.
//
// Every user-editable field (server address, token, section and media
// selections, provider choice, contact list) is written through to a
// statestore.Store on mutation, so a restart resumes where the user left
// off.
//
// Fetch operations (ConnectToServer, UpdateLibrarySections,
// UpdateRecentlyAdded) follow two rules:
//
//   - Failures are caught, logged, and collapse the affected collection to
//     empty. Stale data is never left displayed next to fresh data, and the
//     application stays usable after a partial outage.
//   - Results are applied under a last-call-wins guard: each invocation
//     mints a token before fetching and only writes its result while no
//     newer invocation of the same operation has started. The in-flight
//     request itself is not cancelled.
//
// SendDigest resolves the selected items and active contacts into a
// digest.SendRequest and dispatches it to the configured provider.
package appstate
