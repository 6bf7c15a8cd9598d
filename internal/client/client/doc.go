// Package client contains the HTTP client of the savings analyzer backend.
//
// # Overview
//
// APIClient.Do is the authenticated request path. It reads the credential
// from an injected session.Store, attaches it as a bearer header and applies
// one policy to authentication failures: when no credential is stored, or
// the backend answers 401, the stored session is cleared and the injected
// Navigator is sent to SignInPage. The caller observes this as
// OutcomeAuthRequired and never sees the 401 body.
//
// APIClient.Public is the unauthenticated path used by the sign-in and
// registration endpoints.
//
// # Outcomes
//
// Every request yields an Outcome tagged OutcomeSuccess, OutcomeAuthRequired
// or OutcomeTransportError. Outcome.Result maps them to (Response, error)
// with the sentinels ErrAuthRequired and ErrTransport. Non-2xx answers are
// returned as is; Response.Err turns them into *APIError with the server's
// detail message.
//
// # Database
//
// InitDatabase and RunMigrations bootstrap the local SQLite file the CLI
// keeps its session in.
package client
