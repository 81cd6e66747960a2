// Package services contains the client-side application services:
// the session manager (token lifecycle and current identity), the
// personalization stores (bookmarks, reading history, recent searches)
// and the catalog/admin surfaces over the remote API.
//
// Services hold the only mutable client state. The CLI (or any other
// front) reads plain data out of them and never touches storage or the
// API directly.
package services
