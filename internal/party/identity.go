package party

import (
	"crypto/rand"
	"encoding/hex"
	"log"

	"syncparty/internal/domain"
)

// randomID returns a fresh lowercase-hex id of domain.IDLength characters.
func randomID() string {
	buf := make([]byte, domain.IDLength/2)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// newUserID generates an id that no connected user holds. Collisions are
// rare for a short-lived, low-cardinality population, so generate-and-check
// terminates almost immediately.
func (e *Engine) newUserID() string {
	id := randomID()
	for _, taken := e.users[id]; taken; _, taken = e.users[id] {
		id = randomID()
	}
	return id
}

// newSessionID generates an id that no live session holds.
func (e *Engine) newSessionID() string {
	id := randomID()
	for _, taken := e.sessions[id]; taken; _, taken = e.sessions[id] {
		id = randomID()
	}
	return id
}

// Connect registers a new user for the given connection and returns the
// assigned id. The caller pushes the id to the client.
func (e *Engine) Connect(conn Pusher) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.newUserID()
	e.users[id] = &user{id: id, conn: conn}

	log.Printf("User %s connected.", id)
	return id
}

// Disconnect tears a user down, leaving their session first so the
// remaining members see a "left" message. Duplicate disconnect signals for
// the same id are logged and ignored.
func (e *Engine) Disconnect(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[id]
	if !ok {
		log.Printf("The connection signalled a disconnect after user %s was already removed.", id)
		return
	}

	if u.sessionID != "" {
		e.leaveLocked(u, true)
	}
	delete(e.users, id)
	log.Printf("User %s disconnected.", id)
}

// rebindLocked moves a user record to a new id during reboot. The old entry
// disappears; the connection handle travels with the record.
func (e *Engine) rebindLocked(u *user, newID string) {
	delete(e.users, u.id)
	u.id = newID
	e.users[newID] = u
}
