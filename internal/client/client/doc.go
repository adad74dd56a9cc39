// Package client is the transport half of the console's remote resource
// client.
//
// # Overview
//
// The package provides:
//  1. The endpoint registry (Lookup): one declarative table mapping each
//     operation to its HTTP method, path template and cache tags.
//  2. HTTPClient, which signs every request with the session's bearer token,
//     stamps it with an X-Request-ID and logs the session out on any 401.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     sqlite file and applying embedded goose migrations.
//
// # Error Handling
//
// Non-2xx responses are *APIError values. Common conditions can be matched
// with errors.Is: ErrUnauthorized (401), ErrForbidden (403), ErrNotFound
// (404) and ErrUnavailable for transport failures.
//
// Caching lives one level up, in package cache; this package never stores
// responses.
package client
