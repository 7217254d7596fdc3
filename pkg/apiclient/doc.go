// Package apiclient provides the shared HTTP request base used by every
// external provider client in this module (Plex, JMAP, Mailjet, Imgur, the
// MJML render API).
//
// All requests funnel through a single Request primitive. Each provider
// supplies an Authenticator that injects its own credentials scheme (token
// header, basic auth, client-identifier header) into the outgoing request.
//
// Non-2xx responses fail uniformly with ErrRequestFailed carrying the HTTP
// status text. No structured error body is decoded at this layer; providers
// that return structured errors inside successful JSON bodies parse those
// themselves.
//
// Usage:
//
//	client := apiclient.New("https://api.example.com", apiclient.WithAuthenticator(auth))
//
//	var out payload
//	if err := client.Get(ctx, "/v1/things", url.Values{"limit": {"10"}}, &out); err != nil {
//	    // handle transport error
//	}
package apiclient
