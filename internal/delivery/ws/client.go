package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"syncparty/internal/party"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 65536
)

// Client is a single websocket connection. It implements party.Pusher so the
// engine can address the peer by its user id.
type Client struct {
	// userID is the engine identity currently bound to this connection.
	// Only the read pump mutates it (reboot rebinds), so no lock is needed.
	userID string

	engine *party.Engine
	conn   *websocket.Conn
	send   chan []byte
}

// NewClient wraps an upgraded connection.
func NewClient(engine *party.Engine, conn *websocket.Conn) *Client {
	return &Client{
		engine: engine,
		conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// Serve registers the connection with the engine, announces the assigned id
// to the peer, and starts the pumps.
func Serve(engine *party.Engine, conn *websocket.Conn) {
	client := NewClient(engine, conn)
	client.userID = engine.Connect(client)
	client.Push("userId", client.userID)

	go client.WritePump()
	go client.ReadPump()
}

// Push queues an event for the peer without ever blocking the caller; a peer
// that cannot keep up loses the event rather than stalling the engine.
func (c *Client) Push(event string, payload any) {
	data, err := json.Marshal(pushMessage{Type: event, Payload: payload})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		// Buffer full
	}
}

// ReadPump pumps requests from the websocket connection into the engine.
func (c *Client) ReadPump() {
	defer func() {
		c.engine.Disconnect(c.userID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var env envelope
		if err := json.Unmarshal(message, &env); err != nil {
			continue
		}

		c.dispatch(env)
	}
}

// WritePump pumps queued events to the websocket connection and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
