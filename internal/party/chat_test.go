package party

import (
	"testing"
	"time"

	"syncparty/internal/domain"
)

func TestSendMessageReachesAllMembersIncludingAuthor(t *testing.T) {
	e := New()
	aID, aConn := connectUser(e)
	bID, bConn := connectUser(e)

	reply, _ := e.Create(aID, domain.CreateRequest{MediaID: "vid1"})
	e.Join(bID, reply.SessionID)
	aConn.reset()
	bConn.reset()

	if err := e.SendMessage(bID, "anyone here?"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	for name, conn := range map[string]*mockConn{"author": bConn, "other": aConn} {
		got := conn.byType("sendMessage")
		if len(got) != 1 {
			t.Fatalf("Expected one push to %s, got %d", name, len(got))
		}
		msg := got[0].(domain.WireMessage)
		if msg.Body != "anyone here?" || msg.UserID != bID || msg.IsSystemMessage {
			t.Errorf("Unexpected message to %s: %+v", name, msg)
		}
		if msg.ID == "" {
			t.Errorf("Expected server-assigned message id")
		}
	}

	// Appended to the session log in server order
	s := e.sessions[reply.SessionID]
	last := s.messages[len(s.messages)-1]
	if last.body != "anyone here?" || last.isSystemMessage {
		t.Errorf("Expected user message appended to log, got %+v", last)
	}
}

func TestSendMessageNotInSession(t *testing.T) {
	e := New()
	aID, _ := connectUser(e)

	if err := e.SendMessage(aID, "hello"); err != domain.ErrNotInSession {
		t.Errorf("Expected ErrNotInSession, got %v", err)
	}
	if err := e.SendMessage("nobody", "hello"); err != domain.ErrDisconnected {
		t.Errorf("Expected ErrDisconnected, got %v", err)
	}
}

func TestMessageLogIsAppendOnly(t *testing.T) {
	e := New()
	aID, _ := connectUser(e)

	reply, _ := e.Create(aID, domain.CreateRequest{MediaID: "vid1"})
	e.SendMessage(aID, "one")
	e.SendMessage(aID, "two")

	s := e.sessions[reply.SessionID]
	var bodies []string
	for _, m := range s.messages {
		bodies = append(bodies, m.body)
	}
	want := []string{"created the session", "one", "two"}
	if len(bodies) != len(want) {
		t.Fatalf("Expected %v, got %v", want, bodies)
	}
	for i := range want {
		if bodies[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, bodies)
		}
	}
}

func TestTypingAggregateBroadcast(t *testing.T) {
	e := New()
	aID, aConn := connectUser(e)
	bID, bConn := connectUser(e)
	cID, cConn := connectUser(e)

	reply, _ := e.Create(aID, domain.CreateRequest{MediaID: "vid1"})
	e.Join(bID, reply.SessionID)
	e.Join(cID, reply.SessionID)
	for _, conn := range []*mockConn{aConn, bConn, cConn} {
		conn.reset()
	}

	if err := e.SetTyping(bID, true); err != nil {
		t.Fatalf("SetTyping failed: %v", err)
	}

	// The typer is excluded; everyone else learns someone is typing
	if got := bConn.byType("setPresence"); len(got) != 0 {
		t.Errorf("Expected typer excluded from presence push, got %d", len(got))
	}
	for name, conn := range map[string]*mockConn{"a": aConn, "c": cConn} {
		got := conn.byType("setPresence")
		if len(got) != 1 {
			t.Fatalf("Expected one presence push to %s, got %d", name, len(got))
		}
		if !got[0].(domain.PresencePush).AnyoneTyping {
			t.Errorf("Expected anyoneTyping true for %s", name)
		}
	}

	// Two typers: one stopping keeps the aggregate true
	e.SetTyping(aID, true)
	cConn.reset()
	e.SetTyping(bID, false)
	got := cConn.byType("setPresence")
	if len(got) != 1 || !got[0].(domain.PresencePush).AnyoneTyping {
		t.Error("Expected aggregate to stay true while another member types")
	}

	// Last typer stopping clears it
	cConn.reset()
	e.SetTyping(aID, false)
	got = cConn.byType("setPresence")
	if len(got) != 1 || got[0].(domain.PresencePush).AnyoneTyping {
		t.Error("Expected aggregate false once nobody types")
	}
}

func TestLeaveRebroadcastsPresence(t *testing.T) {
	e := New()
	aID, _ := connectUser(e)
	bID, _ := connectUser(e)
	cID, cConn := connectUser(e)

	reply, _ := e.Create(aID, domain.CreateRequest{MediaID: "vid1"})
	e.Join(bID, reply.SessionID)
	e.Join(cID, reply.SessionID)

	// B was the only typer; their departure must clear the aggregate
	e.SetTyping(bID, true)
	cConn.reset()

	e.Leave(bID)

	got := cConn.byType("setPresence")
	if len(got) != 1 {
		t.Fatalf("Expected presence push after leave, got %d", len(got))
	}
	if got[0].(domain.PresencePush).AnyoneTyping {
		t.Error("Expected aggregate false after the typer left")
	}
}

func TestServerTime(t *testing.T) {
	at := time.UnixMilli(1_700_000_123_456)
	e := New()
	fixClock(e, at)
	aID, _ := connectUser(e)

	got, err := e.ServerTime(aID, "1.2.3")
	if err != nil {
		t.Fatalf("ServerTime failed: %v", err)
	}
	if got != at.UnixMilli() {
		t.Errorf("Expected %d, got %d", at.UnixMilli(), got)
	}

	if _, err := e.ServerTime("nobody", ""); err != domain.ErrDisconnected {
		t.Errorf("Expected ErrDisconnected, got %v", err)
	}
}
