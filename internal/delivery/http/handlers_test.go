package http

import (
	"net/http/httptest"
	"testing"

	"syncparty/internal/config"
	"syncparty/internal/domain"
	"syncparty/internal/party"
)

type nopPusher struct{}

func (nopPusher) Push(event string, payload any) {}

func TestHandleHealth(t *testing.T) {
	h := NewHandler(party.New())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != 200 {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body OK, got %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain" {
		t.Errorf("Expected text/plain, got %q", ct)
	}
}

func TestHandleHealthUnknownPath(t *testing.T) {
	h := NewHandler(party.New())

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != 404 {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestHandleCounts(t *testing.T) {
	engine := party.New()
	h := NewHandler(engine)

	userID := engine.Connect(nopPusher{})
	if _, err := engine.Create(userID, domain.CreateRequest{MediaID: "vid1"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	w := httptest.NewRecorder()
	h.HandleSessionCount(w, httptest.NewRequest("GET", "/number-of-sessions", nil))
	if w.Body.String() != "1" {
		t.Errorf("Expected 1 session, got %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	h.HandleUserCount(w, httptest.NewRequest("GET", "/number-of-users", nil))
	if w.Body.String() != "1" {
		t.Errorf("Expected 1 user, got %q", w.Body.String())
	}
}

func TestIsOriginAllowed(t *testing.T) {
	orig := config.AppConfig
	defer func() { config.AppConfig = orig }()

	config.AppConfig = &config.Config{AllowedOrigins: []string{"https://watch.example.com"}}

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true}, // same-origin
		{"https://watch.example.com", true},
		{"https://evil.example.com", false},
	}
	for _, tc := range tests {
		if got := isOriginAllowed(tc.origin); got != tc.want {
			t.Errorf("isOriginAllowed(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}

	config.AppConfig = &config.Config{AllowedOrigins: []string{"*"}}
	if !isOriginAllowed("https://anything.example.com") {
		t.Error("Expected wildcard to allow any origin")
	}
}
