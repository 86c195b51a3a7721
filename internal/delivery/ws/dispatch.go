package ws

import (
	"encoding/json"
	"log"

	"syncparty/internal/domain"
)

// dispatch routes one inbound request to the engine and acks the result.
// Malformed payload fields are passed through as their zero values; the
// engine trusts inbound fields the way the service always has.
func (c *Client) dispatch(env envelope) {
	switch env.Type {
	case "reboot":
		var req domain.RebootRequest
		json.Unmarshal(env.Payload, &req)
		newID, reply, err := c.engine.Reboot(c.userID, req)
		if err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.userID = newID
		c.ack(env, reply)

	case "createSession":
		var req domain.CreateRequest
		json.Unmarshal(env.Payload, &req)
		reply, err := c.engine.Create(c.userID, req)
		if err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.ack(env, reply)

	case "joinSession":
		var req domain.JoinRequest
		json.Unmarshal(env.Payload, &req)
		reply, err := c.engine.Join(c.userID, req.SessionID)
		if err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.ack(env, reply)

	case "leaveSession":
		if err := c.engine.Leave(c.userID); err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.ack(env, nil)

	case "updateSession":
		var req domain.UpdateRequest
		json.Unmarshal(env.Payload, &req)
		if err := c.engine.Update(c.userID, req); err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.ack(env, nil)

	case "sendMessage":
		var req domain.SendMessageRequest
		json.Unmarshal(env.Payload, &req)
		if err := c.engine.SendMessage(c.userID, req.Body); err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.ack(env, nil)

	case "typing":
		var req domain.TypingRequest
		json.Unmarshal(env.Payload, &req)
		if err := c.engine.SetTyping(c.userID, req.Typing); err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.ack(env, nil)

	case "getServerTime":
		var req domain.ServerTimeRequest
		json.Unmarshal(env.Payload, &req)
		now, err := c.engine.ServerTime(c.userID, req.Version)
		if err != nil {
			c.ack(env, errorPayload{ErrorMessage: err.Error()})
			return
		}
		c.ack(env, now)

	default:
		log.Printf("User %s sent unknown event %q.", c.userID, env.Type)
	}
}

// ack answers a request. Requests without a seq asked for no reply.
func (c *Client) ack(env envelope, payload any) {
	if env.Seq == nil {
		return
	}
	data, err := json.Marshal(ackMessage{Type: "ack", Seq: *env.Seq, Payload: payload})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
