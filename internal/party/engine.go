package party

import (
	"sync"
	"time"

	"syncparty/internal/domain"
)

// Pusher is the live connection handle used to fan events out to a user.
// Push must never block; implementations drop when the peer cannot keep up.
type Pusher interface {
	Push(event string, payload any)
}

// user is one connected client.
type user struct {
	id        string
	sessionID string // "" when not in a session
	typing    bool
	conn      Pusher
}

// session is one synchronized viewing party.
type session struct {
	id                     string
	ownerID                string // "" when nobody holds exclusive control
	mediaID                string
	state                  domain.PlaybackState
	lastKnownTime          int64 // ms into the media, valid as of lastKnownTimeUpdatedAt
	lastKnownTimeUpdatedAt time.Time
	currentTime            float64
	memberIDs              []string // join order
	messages               []chatMessage
}

// chatMessage is an entry in a session's append-only log.
type chatMessage struct {
	id              string
	userID          string
	body            string
	isSystemMessage bool
	timestamp       time.Time
}

// Engine owns the identity registry and the session store. A single lock
// serializes all operations: none of them performs blocking I/O mid-mutation
// (pushes are fire-and-forget), so operations on one session can never
// interleave their read-modify-write of the playback clock.
type Engine struct {
	mu       sync.Mutex
	users    map[string]*user
	sessions map[string]*session

	now func() time.Time
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{
		users:    make(map[string]*user),
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// UserCount returns the number of connected users.
func (e *Engine) UserCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.users)
}

// SessionCount returns the number of live sessions.
func (e *Engine) SessionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

func (e *Engine) wireMessages(s *session) []domain.WireMessage {
	out := make([]domain.WireMessage, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, domain.WireMessage{
			ID:              m.id,
			UserID:          m.userID,
			Body:            m.body,
			IsSystemMessage: m.isSystemMessage,
			Timestamp:       m.timestamp.UnixMilli(),
		})
	}
	return out
}

func ownerRef(ownerID string) *string {
	if ownerID == "" {
		return nil
	}
	return &ownerID
}
