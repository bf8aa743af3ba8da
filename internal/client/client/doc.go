// Package client contains the client-side building blocks for GophDrive.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     identity, the file catalog, uploads, summaries and billing.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     cached bearer token to every request and maps HTTP statuses to
//     sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     shell, opening an SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrNoSession.
// Other non-2xx answers surface as *APIError.
package client
