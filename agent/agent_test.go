package agent

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nstehr/vanguard/vanguard-core/combat"
	"github.com/nstehr/vanguard/vanguard-core/ipc"
	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

type recorder struct {
	calls []string
}

func (r *recorder) UseSkill(slot, target int) error {
	r.calls = append(r.calls, fmt.Sprintf("use %d %d", slot, target))
	return nil
}

func (r *recorder) Interact(target int) error {
	r.calls = append(r.calls, fmt.Sprintf("interact %d", target))
	return nil
}

func (r *recorder) Move(x, y float64) error {
	r.calls = append(r.calls, fmt.Sprintf("move %.0f %.0f", x, y))
	return nil
}

func (r *recorder) CancelMovement() error {
	r.calls = append(r.calls, "cancel")
	return nil
}

type memberSink chan model.PartyMember

func (s memberSink) Publish(m model.PartyMember) error {
	s <- m
	return nil
}

func testCatalog() *skills.Catalog {
	return skills.NewCatalog([]skills.Skill{
		{
			ID:               281,
			Name:             "Orison of Healing",
			Nature:           skills.NatureHealing,
			TargetAllegiance: skills.TargetAlly,
			Static:           skills.Static{EnergyCost: 5, Activation: 1, Aftercast: 0.75, Range: model.RangeSpellcast},
			Conditions:       skills.ConditionSet{LessLife: 0.85},
		},
	})
}

func combatWorld() model.WorldState {
	ws := baseWorld(1000)
	ws.InAggro = true
	ws.Agents[0].HP = 0.5
	return ws
}

func TestAgentTickCasts(t *testing.T) {
	rec := &recorder{}
	a, err := New(nil, Options{Catalog: testCatalog(), Commands: rec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out := a.Tick(combatWorld())
	if out.State != combat.StateCasting || out.Target != 2 {
		t.Fatalf("Tick = %+v, want a heal on agent 2", out)
	}
	if len(rec.calls) != 1 || rec.calls[0] != "use 0 2" {
		t.Errorf("commands = %v", rec.calls)
	}
}

func TestAgentLocalOverrides(t *testing.T) {
	rec := &recorder{}
	a, err := New(nil, Options{Catalog: testCatalog(), Commands: rec, DisableCombat: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if out := a.Tick(combatWorld()); out.State != combat.StateIdle || len(rec.calls) != 0 {
		t.Errorf("Tick = %+v with %v, want idle with combat disabled", out, rec.calls)
	}
}

func TestAgentUsesSharedParty(t *testing.T) {
	rec := &recorder{}
	shared := model.PartyState{CombatDisabled: true}
	a, err := New(nil, Options{Catalog: testCatalog(), Commands: rec, Party: shared})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if out := a.Tick(combatWorld()); out.State != combat.StateIdle {
		t.Errorf("Tick = %+v, shared party state should disable combat", out)
	}
}

func TestAgentHandlers(t *testing.T) {
	rec := &recorder{}
	a, err := New(nil, Options{Catalog: testCatalog(), Commands: rec})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	hello, _ := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Player: "Mhenlo", Account: "main"})
	resp, err := a.HandleHello(hello)
	if err != nil {
		t.Fatalf("HandleHello: %v", err)
	}
	if resp == nil || resp.Type != ipc.TypeAck {
		t.Errorf("HandleHello reply = %+v, want ack", resp)
	}
	if a.Player != "Mhenlo" || a.Account != "main" {
		t.Errorf("identity = %q/%q", a.Player, a.Account)
	}

	state, _ := ipc.NewEnvelope(ipc.TypeWorldState, combatWorld())
	if resp, err := a.HandleWorldState(state); err != nil || resp != nil {
		t.Errorf("HandleWorldState = (%v, %v), want no reply", resp, err)
	}
	if len(rec.calls) != 1 {
		t.Errorf("commands = %v, want one cast", rec.calls)
	}

	if _, err := a.HandleWorldState(ipc.Envelope{Type: ipc.TypeWorldState, Data: []byte(`{"self":`)}); err == nil {
		t.Error("malformed world state should fail")
	}
}

func TestAgentPublishesMemberState(t *testing.T) {
	sink := make(memberSink, 4)
	pub := NewPublisher(sink, 250, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pub.Start(ctx)

	a, err := New(nil, Options{Catalog: testCatalog(), Commands: &recorder{}, Publisher: pub})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Tick(combatWorld())

	select {
	case m := <-sink:
		if m.AgentID != 1 || m.TargetID != 2 || !m.Casting || m.CastingSkill != 281 {
			t.Errorf("published = %+v, want casting 281 on 2", m)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("member state was never published")
	}
}

func TestNewRequiresCommands(t *testing.T) {
	if _, err := New(nil, Options{}); err == nil {
		t.Error("expected an error without a connection or command sink")
	}
}
