package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"syncparty/internal/config"
	"syncparty/internal/delivery/ws"
	"syncparty/internal/party"
)

// isOriginAllowed checks if the origin is in the allowed list
func isOriginAllowed(origin string) bool {
	// Empty origin is allowed (same-origin requests)
	if origin == "" {
		return true
	}

	for _, allowed := range config.AppConfig.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return isOriginAllowed(origin)
	},
}

type Handler struct {
	engine *party.Engine
}

func NewHandler(engine *party.Engine) *Handler {
	return &Handler{engine: engine}
}

// HandleHealth answers the health check with a plain OK.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("OK"))
}

// HandleSessionCount reports the number of live sessions as decimal text.
func (h *Handler) HandleSessionCount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(strconv.Itoa(h.engine.SessionCount())))
}

// HandleUserCount reports the number of connected users as decimal text.
func (h *Handler) HandleUserCount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(strconv.Itoa(h.engine.UserCount())))
}

// HandleWebSocket upgrades HTTP to WebSocket and hands the connection to the
// engine.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	ws.Serve(h.engine, conn)
}
