package party

import (
	"log"

	"github.com/google/uuid"

	"syncparty/internal/domain"
)

func newMessageID() string {
	return uuid.New().String()
}

// SendMessage appends a user chat message and fans it out to every member,
// author included.
func (e *Engine) SendMessage(userID, body string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[userID]
	if !ok {
		log.Println("The connection received a request after it was disconnected.")
		return domain.ErrDisconnected
	}
	if u.sessionID == "" {
		log.Printf("User %s attempted to send a message, but the user was not in a session.", u.id)
		return domain.ErrNotInSession
	}

	e.sendMessageLocked(u, body, false)

	log.Printf("User %s sent message %s.", u.id, body)
	return nil
}

// sendMessageLocked appends a message to u's session log (server-assigned
// order) and pushes it to every member including u. Caller holds e.mu and
// guarantees u.sessionID != "".
func (e *Engine) sendMessageLocked(u *user, body string, isSystemMessage bool) {
	s := e.sessions[u.sessionID]
	msg := chatMessage{
		id:              newMessageID(),
		userID:          u.id,
		body:            body,
		isSystemMessage: isSystemMessage,
		timestamp:       e.now(),
	}
	s.messages = append(s.messages, msg)

	push := domain.WireMessage{
		ID:              msg.id,
		UserID:          msg.userID,
		Body:            msg.body,
		IsSystemMessage: msg.isSystemMessage,
		Timestamp:       msg.timestamp.UnixMilli(),
	}
	for _, id := range s.memberIDs {
		log.Printf("Sending message to user %s.", id)
		e.users[id].conn.Push("sendMessage", push)
	}
}

// SetTyping flips the caller's typing hint and, when they are in a session,
// re-broadcasts the aggregate to the other members.
func (e *Engine) SetTyping(userID string, typing bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[userID]
	if !ok {
		log.Println("The connection received a request after it was disconnected.")
		return domain.ErrDisconnected
	}

	u.typing = typing
	if u.sessionID != "" {
		e.broadcastPresenceLocked(u.sessionID, u.id)
	}
	return nil
}

// broadcastPresenceLocked sends the session's aggregate typing flag to every
// member except exceptID (pass "" to reach everyone). Caller holds e.mu.
func (e *Engine) broadcastPresenceLocked(sessionID, exceptID string) {
	s := e.sessions[sessionID]

	anyoneTyping := false
	for _, id := range s.memberIDs {
		if e.users[id].typing {
			anyoneTyping = true
			break
		}
	}

	for _, id := range s.memberIDs {
		if id != exceptID {
			log.Printf("Sending presence to user %s.", id)
			e.users[id].conn.Push("setPresence", domain.PresencePush{AnyoneTyping: anyoneTyping})
		}
	}
}

// ServerTime returns the current server clock in epoch milliseconds. The
// client version, when reported, is logged.
func (e *Engine) ServerTime(userID, version string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.users[userID]; !ok {
		log.Println("The connection received a request after it was disconnected.")
		return 0, domain.ErrDisconnected
	}

	if version != "" {
		log.Printf("User %s pinged with version %s.", userID, version)
	} else {
		log.Printf("User %s pinged.", userID)
	}
	return e.now().UnixMilli(), nil
}
