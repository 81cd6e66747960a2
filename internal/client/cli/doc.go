// Package cli is the interactive front of the Coffee'n me client: a small
// REPL over the services layer. It holds no business state of its own —
// sessions, bookmarks, history and searches all live in services.
package cli
