package domain

// Wire payload types for the duplex protocol. All instants travel as epoch
// milliseconds; durations into the media are also milliseconds.

// WireMessage is a chat message as it appears on the wire and in client-held
// session snapshots.
type WireMessage struct {
	ID              string `json:"id,omitempty"`
	UserID          string `json:"userId"`
	Body            string `json:"body"`
	IsSystemMessage bool   `json:"isSystemMessage"`
	Timestamp       int64  `json:"timestamp"`
}

// CreateRequest asks for a fresh session.
type CreateRequest struct {
	MediaID     string  `json:"mediaId"`
	ControlLock bool    `json:"controlLock"`
	CurrentTime float64 `json:"currentTime"`
}

// CreateReply is the snapshot returned to the creator. Messages is always
// empty: the "created the session" system message is appended after the
// reply is built and reaches the creator over the push channel instead.
type CreateReply struct {
	SessionID              string        `json:"sessionId"`
	LastKnownTime          int64         `json:"lastKnownTime"`
	LastKnownTimeUpdatedAt int64         `json:"lastKnownTimeUpdatedAt"`
	State                  PlaybackState `json:"state"`
	Messages               []WireMessage `json:"messages"`
	CurrentTime            float64       `json:"currentTime"`
}

// JoinRequest names the session to join.
type JoinRequest struct {
	SessionID string `json:"sessionId"`
}

// JoinReply is the snapshot returned to a joiner. Like CreateReply it is
// built before the joiner's own "joined" system message is appended, so that
// message arrives via the push channel only.
type JoinReply struct {
	MediaID                string        `json:"mediaId"`
	LastKnownTime          int64         `json:"lastKnownTime"`
	LastKnownTimeUpdatedAt int64         `json:"lastKnownTimeUpdatedAt"`
	Messages               []WireMessage `json:"messages"`
	OwnerID                *string       `json:"ownerId"`
	State                  PlaybackState `json:"state"`
	CurrentTime            float64       `json:"currentTime"`
}

// RebootRequest carries the identity and full session snapshot a
// reconnecting client remembers locally.
type RebootRequest struct {
	UserID                 string        `json:"userId"`
	SessionID              string        `json:"sessionId"`
	LastKnownTime          int64         `json:"lastKnownTime"`
	LastKnownTimeUpdatedAt int64         `json:"lastKnownTimeUpdatedAt"`
	State                  PlaybackState `json:"state"`
	MediaID                string        `json:"mediaId"`
	OwnerID                *string       `json:"ownerId"`
	Messages               []WireMessage `json:"messages"`
}

// RebootReply is the server's authoritative playback clock after a reboot;
// the caller reconciles to it rather than its own stale snapshot.
type RebootReply struct {
	LastKnownTime          int64         `json:"lastKnownTime"`
	LastKnownTimeUpdatedAt int64         `json:"lastKnownTimeUpdatedAt"`
	State                  PlaybackState `json:"state"`
}

// UpdateRequest reports a member's local playback clock.
type UpdateRequest struct {
	LastKnownTime          int64         `json:"lastKnownTime"`
	LastKnownTimeUpdatedAt int64         `json:"lastKnownTimeUpdatedAt"`
	State                  PlaybackState `json:"state"`
	CurrentTime            float64       `json:"currentTime"`
}

// UpdatePush fans a committed playback clock out to the other members.
type UpdatePush struct {
	LastKnownTime          int64         `json:"lastKnownTime"`
	LastKnownTimeUpdatedAt int64         `json:"lastKnownTimeUpdatedAt"`
	State                  PlaybackState `json:"state"`
	CurrentTime            float64       `json:"currentTime"`
}

// SendMessageRequest is a user chat message.
type SendMessageRequest struct {
	Body string `json:"body"`
}

// TypingRequest flips the caller's typing presence hint.
type TypingRequest struct {
	Typing bool `json:"typing"`
}

// PresencePush aggregates typing state for a session's members.
type PresencePush struct {
	AnyoneTyping bool `json:"anyoneTyping"`
}

// ServerTimeRequest optionally reports the client version for logging.
type ServerTimeRequest struct {
	Version string `json:"version"`
}
