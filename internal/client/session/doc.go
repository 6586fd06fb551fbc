// Package session persists the client's authenticated session (access token,
// its expiry and the cached user record) in a local SQLite database so that it
// survives a restart.
//
// Save and Clear are transactional: a reader never observes a token without
// its user or vice versa. Load treats missing or unparseable entries as "no
// session" and returns (nil, nil). Every storage failure is reported as
// ErrStorage.
package session
