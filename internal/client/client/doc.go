// Package client talks to the Remote Action Endpoint, the single-URL backend
// that stores gallery entries and their images.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): FetchAll,
//     Register, Update, Delete and VerifyPassword.
//  2. A concrete HTTP implementation (see HTTPClient). Listing is a GET with
//     an action query parameter; every mutation is a POST whose body is one
//     JSON object sent as text/plain, which keeps browsers and proxies from
//     issuing a CORS pre-flight. Responses are read as text and parsed as JSON.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable (network, non-2xx), ErrMalformedResponse (body is
// not the expected JSON) and ErrRemoteFailure (the endpoint answered
// success:false; the concrete *RemoteError carries its message).
//
// Nothing is retried. The endpoint has no idempotency key, so a retried
// registration could create a duplicate record.
package client
