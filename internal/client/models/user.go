// Package models defines the data shapes exchanged with the Coffee'n me
// backend and persisted in the local store.
package models

// User is the public author identity attached to posts and comments.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	PostsCount int    `json:"posts_count"`
}

// CurrentUser is the authenticated identity returned by the profile endpoint.
// It exists only for the lifetime of a validated token and is never persisted;
// it is always re-derived from the token on startup.
type CurrentUser struct {
	User
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	DateJoined  string `json:"date_joined"`
}
