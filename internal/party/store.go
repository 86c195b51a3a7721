package party

import (
	"log"

	"syncparty/internal/domain"
)

// Create starts a new session with the caller as its only member. The reply
// snapshot is built before the "created the session" system message is
// appended, so its message list is empty and the creator receives that
// message over the push channel like everyone else.
func (e *Engine) Create(userID string, req domain.CreateRequest) (domain.CreateReply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[userID]
	if !ok {
		log.Println("The connection received a request after it was disconnected.")
		return domain.CreateReply{}, domain.ErrDisconnected
	}

	s := &session{
		id:                     e.newSessionID(),
		mediaID:                req.MediaID,
		state:                  domain.StatePaused,
		lastKnownTime:          0,
		lastKnownTimeUpdatedAt: e.now(),
		currentTime:            req.CurrentTime,
		memberIDs:              []string{u.id},
	}
	if req.ControlLock {
		s.ownerID = u.id
	}
	u.sessionID = s.id
	e.sessions[s.id] = s

	reply := domain.CreateReply{
		SessionID:              s.id,
		LastKnownTime:          s.lastKnownTime,
		LastKnownTimeUpdatedAt: s.lastKnownTimeUpdatedAt.UnixMilli(),
		State:                  s.state,
		Messages:               e.wireMessages(s),
		CurrentTime:            s.currentTime,
	}

	if req.ControlLock {
		e.sendMessageLocked(u, "created the session with exclusive control", true)
	} else {
		e.sendMessageLocked(u, "created the session", true)
	}

	log.Printf("User %s created session %s with media %q and controlLock %v.", u.id, s.id, s.mediaID, req.ControlLock)
	return reply, nil
}

// Join adds the caller to an existing session. The reply snapshot is built
// before the "joined" system message is appended; the joiner sees their own
// join only via the push channel.
func (e *Engine) Join(userID, sessionID string) (domain.JoinReply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[userID]
	if !ok {
		log.Println("The connection received a request after it was disconnected.")
		return domain.JoinReply{}, domain.ErrDisconnected
	}
	if u.sessionID != "" {
		log.Printf("User %s attempted to join session %s, but the user is already in session %s.", u.id, sessionID, u.sessionID)
		return domain.JoinReply{}, domain.ErrAlreadyInSession
	}
	s, ok := e.sessions[sessionID]
	if !ok {
		log.Printf("User %s attempted to join session %s, but there is no such session.", u.id, sessionID)
		return domain.JoinReply{}, domain.ErrSessionNotFound
	}

	u.sessionID = s.id
	s.memberIDs = append(s.memberIDs, u.id)

	reply := domain.JoinReply{
		MediaID:                s.mediaID,
		LastKnownTime:          s.lastKnownTime,
		LastKnownTimeUpdatedAt: s.lastKnownTimeUpdatedAt.UnixMilli(),
		Messages:               e.wireMessages(s),
		OwnerID:                ownerRef(s.ownerID),
		State:                  s.state,
		CurrentTime:            s.currentTime,
	}

	e.sendMessageLocked(u, "joined", true)

	log.Printf("User %s joined session %s.", u.id, s.id)
	return reply, nil
}

// Leave removes the caller from their session.
func (e *Engine) Leave(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[userID]
	if !ok {
		log.Println("The connection received a request after it was disconnected.")
		return domain.ErrDisconnected
	}
	if u.sessionID == "" {
		log.Printf("User %s attempted to leave a session, but the user was not in one.", u.id)
		return domain.ErrNotInSession
	}

	sessionID := u.sessionID
	e.leaveLocked(u, true)

	log.Printf("User %s left session %s.", u.id, sessionID)
	return nil
}

// leaveLocked removes u from its session. The "left" system message goes
// out first so the remaining members see it; a session emptied by the
// removal is deleted in the same step. Caller holds e.mu and guarantees
// u.sessionID != "".
func (e *Engine) leaveLocked(u *user, broadcast bool) {
	e.sendMessageLocked(u, "left", true)

	sessionID := u.sessionID
	s := e.sessions[sessionID]
	for i, id := range s.memberIDs {
		if id == u.id {
			s.memberIDs = append(s.memberIDs[:i], s.memberIDs[i+1:]...)
			break
		}
	}
	u.sessionID = ""

	if len(s.memberIDs) == 0 {
		delete(e.sessions, sessionID)
		log.Printf("Session %s was deleted because there were no more users in it.", sessionID)
	} else if broadcast {
		e.broadcastPresenceLocked(sessionID, "")
	}
}
