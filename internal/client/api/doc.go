// Package api defines the remote surface of the Coffee'n me backend as
// consumed by this client, and an HTTP/JSON implementation of it.
//
// All business state lives on the server; this package is transport only.
// Callers receive sentinel errors (see errors.go) instead of raw transport
// failures and should match them with errors.Is.
package api
