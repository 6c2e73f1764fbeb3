package partyfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nstehr/vanguard/vanguard-core/model"
)

func TestApply(t *testing.T) {
	f := New("ws://unused", nil)
	if !f.CombatEnabled() || !f.TargetingEnabled() || !f.SkillEnabled(0) {
		t.Error("empty feed should leave every toggle enabled")
	}

	payload := `{"type":"party_state","party":{"leader":2,"calledTarget":40,"skillsDisabled":[false,true],"members":[{"agentId":2,"targetId":40,"attacking":true}]}}`
	if err := f.Apply([]byte(payload)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if f.LeaderID() != 2 || f.CalledTarget() != 40 {
		t.Errorf("leader/called = %d/%d, want 2/40", f.LeaderID(), f.CalledTarget())
	}
	if f.SkillEnabled(1) || !f.SkillEnabled(0) {
		t.Error("slot toggles not applied")
	}
	if len(f.Members()) != 1 || !f.Members()[0].Engaging() {
		t.Errorf("members = %+v", f.Members())
	}
	if _, at := f.Snapshot(); at.IsZero() {
		t.Error("update time should be recorded")
	}

	if err := f.Apply([]byte(`{"type":"member_state","member":{"agentId":3}}`)); err != nil {
		t.Errorf("other message types should be ignored, got %v", err)
	}
	if err := f.Apply([]byte(`{"type":"party_state"}`)); err == nil {
		t.Error("party_state without a body should fail")
	}
	if err := f.Apply([]byte(`not json`)); err == nil {
		t.Error("malformed payload should fail")
	}
	if f.LeaderID() != 2 {
		t.Error("bad messages must not clobber the stored state")
	}
}

func TestFeedRoundTrip(t *testing.T) {
	published := make(chan model.PartyMember, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		state := model.PartyState{Leader: 5, Called: 77}
		data, _ := json.Marshal(message{Type: TypePartyState, Party: &state})
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg message
			if err := json.Unmarshal(payload, &msg); err == nil && msg.Type == TypeMemberState && msg.Member != nil {
				published <- *msg.Member
			}
		}
	}))
	t.Cleanup(srv.Close)

	f := New("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for f.LeaderID() != 5 {
		if time.Now().After(deadline) {
			t.Fatal("party state never arrived")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if f.CalledTarget() != 77 {
		t.Errorf("CalledTarget() = %d, want 77", f.CalledTarget())
	}

	if err := f.Publish(model.PartyMember{AgentID: 9, TargetID: 77, Casting: true}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case m := <-published:
		if m.AgentID != 9 || m.TargetID != 77 || !m.Casting {
			t.Errorf("published member = %+v", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("relay never received the member state")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestPublishWhileDisconnected(t *testing.T) {
	f := New("ws://unused", nil)
	if err := f.Publish(model.PartyMember{AgentID: 1}); err != ErrNotConnected {
		t.Errorf("Publish = %v, want ErrNotConnected", err)
	}
}
