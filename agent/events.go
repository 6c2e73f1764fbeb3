package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/vanguard/vanguard-core/model"
)

// EventKind identifies a notable change between two consecutive world
// snapshots.
type EventKind string

const (
	EventAggroEntered   EventKind = "aggro_entered"
	EventAggroLeft      EventKind = "aggro_left"
	EventDied           EventKind = "died"
	EventResurrected    EventKind = "resurrected"
	EventLoadoutChanged EventKind = "loadout_changed"
	EventAllyDown       EventKind = "ally_down"
	EventTargetKilled   EventKind = "target_killed"
)

// Event is one detected change. Detail is a human-readable description for
// the session log.
type Event struct {
	Kind   EventKind
	Time   int64
	Detail string
}

// stateSnapshot captures the diffable fields of a world snapshot.
type stateSnapshot struct {
	time      int64
	inAggro   bool
	dead      bool
	loadout   [8]int
	targetID  int
	deadParty map[int]bool
	deadFoes  map[int]bool
}

func takeSnapshot(ws model.WorldState) stateSnapshot {
	s := stateSnapshot{
		time:      ws.Time,
		inAggro:   ws.InAggro,
		dead:      ws.Self.Dead,
		targetID:  ws.Self.TargetID,
		deadParty: make(map[int]bool),
		deadFoes:  make(map[int]bool),
	}
	for i, slot := range ws.Self.SkillBar {
		s.loadout[i] = slot.SkillID
	}
	for _, a := range ws.Agents {
		if !a.Dead {
			continue
		}
		if a.InParty {
			s.deadParty[a.ID] = true
		} else if a.IsEnemy() {
			s.deadFoes[a.ID] = true
		}
	}
	return s
}

// detectEvents compares cur against prev. A nil prev yields no events.
func detectEvents(prev *stateSnapshot, cur stateSnapshot) []Event {
	if prev == nil {
		return nil
	}
	var events []Event
	add := func(kind EventKind, format string, args ...any) {
		events = append(events, Event{Kind: kind, Time: cur.time, Detail: fmt.Sprintf(format, args...)})
	}

	switch {
	case !prev.inAggro && cur.inAggro:
		add(EventAggroEntered, "entered combat")
	case prev.inAggro && !cur.inAggro:
		add(EventAggroLeft, "left combat")
	}

	switch {
	case !prev.dead && cur.dead:
		add(EventDied, "player died")
	case prev.dead && !cur.dead:
		add(EventResurrected, "player resurrected")
	}

	if prev.loadout != cur.loadout {
		add(EventLoadoutChanged, "skillbar now %v", cur.loadout)
	}

	for id := range cur.deadParty {
		if !prev.deadParty[id] {
			add(EventAllyDown, "party member %d died", id)
		}
	}

	if prev.targetID != 0 && cur.deadFoes[prev.targetID] && !prev.deadFoes[prev.targetID] {
		add(EventTargetKilled, "target %d killed", prev.targetID)
	}
	return events
}

func formatEvents(events []Event) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Kind, e.Detail))
	}
	return strings.Join(parts, "; ")
}
