package party

import (
	"log"
	"time"

	"syncparty/internal/domain"
)

// Reboot resumes a logical identity and session over a fresh transport
// connection. currentID is the ephemeral id the registry assigned to the new
// connection; the request names the identity and session the client wants
// back, plus the full snapshot it remembers locally.
//
// If the server still holds the session this is a plain rejoin and the
// snapshot fields are ignored: server state wins. If it does not (the server
// restarted), the session is reconstructed entirely from the snapshot — the
// first client to reboot becomes the source of truth, later rebooters merge
// into whichever version answered first. Best effort, not consistent.
//
// Returns the id the user holds afterwards; the caller must address the
// connection by it from then on.
func (e *Engine) Reboot(currentID string, req domain.RebootRequest) (string, domain.RebootReply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[currentID]
	if !ok {
		log.Println("The connection received a request after it was disconnected.")
		return "", domain.RebootReply{}, domain.ErrDisconnected
	}

	// Stale membership from before the disconnect; no presence broadcast,
	// the reboot's own broadcast below covers the survivors.
	if u.sessionID != "" {
		e.leaveLocked(u, false)
	}

	if u.id != req.UserID {
		e.rebindLocked(u, req.UserID)
	}

	if s, ok := e.sessions[req.SessionID]; ok {
		s.memberIDs = append(s.memberIDs, u.id)
		u.sessionID = s.id
		log.Printf("User %s reconnected and rejoined session %s.", u.id, s.id)
	} else {
		s := &session{
			id:                     req.SessionID,
			mediaID:                req.MediaID,
			state:                  req.State,
			lastKnownTime:          req.LastKnownTime,
			lastKnownTimeUpdatedAt: time.UnixMilli(req.LastKnownTimeUpdatedAt),
			memberIDs:              []string{u.id},
			messages:               messagesFromWire(req.Messages),
		}
		if req.OwnerID != nil {
			s.ownerID = *req.OwnerID
		}
		e.sessions[s.id] = s
		u.sessionID = s.id
		log.Printf("User %s rebooted session %s with media %q, time %d, and state %s for epoch %d.",
			u.id, s.id, s.mediaID, s.lastKnownTime, s.state, req.LastKnownTimeUpdatedAt)
	}

	e.broadcastPresenceLocked(req.SessionID, "")

	s := e.sessions[req.SessionID]
	reply := domain.RebootReply{
		LastKnownTime:          s.lastKnownTime,
		LastKnownTimeUpdatedAt: s.lastKnownTimeUpdatedAt.UnixMilli(),
		State:                  s.state,
	}
	return u.id, reply, nil
}

// messagesFromWire rebuilds a message log from a client snapshot. Snapshots
// predate server-assigned ids, so entries without one get a fresh id.
func messagesFromWire(wire []domain.WireMessage) []chatMessage {
	out := make([]chatMessage, 0, len(wire))
	for _, m := range wire {
		id := m.ID
		if id == "" {
			id = newMessageID()
		}
		out = append(out, chatMessage{
			id:              id,
			userID:          m.UserID,
			body:            m.Body,
			isSystemMessage: m.IsSystemMessage,
			timestamp:       time.UnixMilli(m.Timestamp),
		})
	}
	return out
}
