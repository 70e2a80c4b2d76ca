// Package common contains shared constants and sentinel errors used across
// the usersadmin packages.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request correlation ID
// on outbound API calls.
const RequestIDHeaderName = "X-Request-ID"

// AuthorizationHeaderName carries the bearer token, when one is configured.
const AuthorizationHeaderName = "Authorization"

// AppName is used in the prompt, user agent and log attributes.
const AppName = "usersadmin"
