// Package client is the HTTP side of the consultation client.
//
// # Overview
//
// The package provides:
//  1. A transport-level API contract (see the Client interface) covering the
//     REST endpoints the application consumes: token issuance, the user
//     resource, chat sessions, doctors and appointments.
//  2. A concrete net/http implementation (see HTTPClient) that builds every
//     request with a JSON content type, runs it through an interceptor chain
//     and decodes the JSON reply.
//
// # Interceptors
//
// Every request passes, in order, through:
//   - a request-id interceptor that stamps X-Request-ID,
//   - an access-token interceptor that reads the current token at call time
//     (WithAccessToken override first, then the bound TokenSource) and sets
//     "Authorization: Bearer <token>" when there is one,
//   - an unauthorized interceptor that, on the first 401 seen for a request,
//     tells the bound SessionBinding the session has expired. The 401 is still
//     returned to the caller. There is no refresh flow.
//
// # Error Handling
//
// Non-2xx replies become *APIError. Transport failures wrap ErrUnavailable.
// A 401 reply additionally matches ErrAuthenticationExpired via errors.Is.
package client
