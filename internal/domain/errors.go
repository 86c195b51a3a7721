package domain

import "errors"

// The engine reports failures as values; the ws layer turns them into
// {errorMessage} ack payloads. The strings are the wire contract, so they
// keep their terminal punctuation.
var (
	// ErrDisconnected means the caller's registry entry is gone (a request
	// raced with teardown).
	ErrDisconnected = errors.New("Disconnected.")

	// ErrAlreadyInSession rejects joining while still a member elsewhere.
	ErrAlreadyInSession = errors.New("Already in a session.")

	// ErrNotInSession rejects session-scoped operations from a user with no
	// session.
	ErrNotInSession = errors.New("Not in a session.")

	// ErrSessionLocked rejects playback updates from non-owners of a session
	// created with exclusive control.
	ErrSessionLocked = errors.New("Session locked.")

	// ErrSessionNotFound rejects joining a session id the server does not
	// hold.
	ErrSessionNotFound = errors.New("Session not found.")
)
