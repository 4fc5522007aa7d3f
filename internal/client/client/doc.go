// Package client is the HTTP client the diary CLI uses to talk to the server.
//
// Transport failures surface as ErrUnavailable. Error responses surface as
// *APIError, which unwraps to the matching sentinel from internal/common.
package client
