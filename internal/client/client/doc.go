// Package client contains the transport to the users REST backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     ListUsers, CreateUser, UpdateUser, SetStatus, DeleteUser and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that encodes JSON
//     bodies, stamps every request with an X-Request-ID, attaches an optional
//     bearer token, and maps failures to sentinel errors and *APIError.
//
// # Endpoints
//
//	GET    /users?page&limit&orderBy&orderDir&search&status -> {data, total}
//	POST   /users      {username, password, confirmPassword}
//	PUT    /users/:id  {username[, password, confirmPassword]}
//	PATCH  /users/:id  {status}
//	DELETE /users/:id
//
// # Error Handling
//
// Any non-2xx response is a failure and is returned as *APIError, which
// also matches ErrUnauthorized or ErrNotFound via errors.Is where the status
// code says so. Transport failures match ErrUnavailable. A configured JWT
// whose exp claim has passed fails with ErrTokenExpired before any request
// leaves the process.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; each call is additionally bounded
// by the configured request timeout.
package client
