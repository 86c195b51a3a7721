package ws

import "encoding/json"

// One logical channel per connection, JSON payloads. Requests carry a seq;
// the server answers each with exactly one ack bearing the same seq, whose
// payload is either the success body or {errorMessage}. Server-initiated
// pushes (userId, sendMessage, update, setPresence) carry no seq.

// envelope is an inbound frame.
type envelope struct {
	Type    string          `json:"type"`
	Seq     *int64          `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// pushMessage is a server-initiated frame.
type pushMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ackMessage answers one request.
type ackMessage struct {
	Type    string `json:"type"`
	Seq     int64  `json:"seq"`
	Payload any    `json:"payload"`
}

// errorPayload is the ack body for a failed request.
type errorPayload struct {
	ErrorMessage string `json:"errorMessage"`
}
