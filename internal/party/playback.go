package party

import (
	"fmt"
	"log"
	"time"

	"syncparty/internal/domain"
)

// Update commits a member's reported playback clock and decides what, if
// anything, to tell the room about it.
//
// Both the stored clock and the reported one are extrapolated to the same
// instant (position + elapsed wall time while playing) and compared. A state
// flip and/or a predicted-position divergence beyond the drift tolerance
// each earn a system message; drift at or under the tolerance is silently
// accepted as the new baseline. The commit itself is unconditional.
func (e *Engine) Update(userID string, req domain.UpdateRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, ok := e.users[userID]
	if !ok {
		log.Println("The connection received a request after it was disconnected.")
		return domain.ErrDisconnected
	}
	if u.sessionID == "" {
		log.Printf("User %s attempted to update a session, but the user was not in one.", u.id)
		return domain.ErrNotInSession
	}
	s := e.sessions[u.sessionID]
	if s.ownerID != "" && s.ownerID != u.id {
		log.Printf("User %s attempted to update session %s but the session is locked by %s.", u.id, s.id, s.ownerID)
		return domain.ErrSessionLocked
	}

	now := e.now().UnixMilli()

	oldPredicted := s.lastKnownTime
	if s.state == domain.StatePlaying {
		oldPredicted += now - s.lastKnownTimeUpdatedAt.UnixMilli()
	}
	newPredicted := req.LastKnownTime
	if req.State == domain.StatePlaying {
		newPredicted += now - req.LastKnownTimeUpdatedAt
	}

	stateChanged := s.state != req.State
	jumped := absInt64(newPredicted-oldPredicted) > domain.DriftToleranceMs
	timeStr := formatOffset(newPredicted)

	s.lastKnownTime = req.LastKnownTime
	s.lastKnownTimeUpdatedAt = time.UnixMilli(req.LastKnownTimeUpdatedAt)
	s.state = req.State
	s.currentTime = req.CurrentTime

	switch {
	case stateChanged && jumped:
		if req.State == domain.StatePlaying {
			e.sendMessageLocked(u, "started playing the video at "+timeStr, true)
		} else {
			e.sendMessageLocked(u, "paused the video at "+timeStr, true)
		}
	case stateChanged:
		if req.State == domain.StatePlaying {
			e.sendMessageLocked(u, "started playing the video", true)
		} else {
			e.sendMessageLocked(u, "paused the video", true)
		}
	case jumped:
		e.sendMessageLocked(u, "jumped to "+timeStr, true)
	}

	log.Printf("User %s updated session %s with time %d and state %s for epoch %d.",
		u.id, s.id, req.LastKnownTime, req.State, req.LastKnownTimeUpdatedAt)

	push := domain.UpdatePush{
		LastKnownTime:          s.lastKnownTime,
		LastKnownTimeUpdatedAt: s.lastKnownTimeUpdatedAt.UnixMilli(),
		State:                  s.state,
		CurrentTime:            s.currentTime,
	}
	for _, id := range s.memberIDs {
		if id != u.id {
			log.Printf("Sending update to user %s.", id)
			e.users[id].conn.Push("update", push)
		}
	}
	return nil
}

// formatOffset renders a millisecond offset into the media as H:MM:SS, or
// M:SS when under an hour.
func formatOffset(ms int64) string {
	hours := ms / (1000 * 60 * 60)
	ms -= hours * 1000 * 60 * 60
	minutes := ms / (1000 * 60)
	ms -= minutes * 1000 * 60
	seconds := ms / 1000

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
