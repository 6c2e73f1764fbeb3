package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/vanguard/vanguard-core/combat"
	"github.com/nstehr/vanguard/vanguard-core/ipc"
	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// Agent owns the combat decisions for a single character session.
type Agent struct {
	ID      uuid.UUID
	Conn    *ipc.Connection
	Player  string
	Account string

	controller *combat.Controller
	party      combat.PartyState
	publisher  *Publisher
	overrides  overrides
	log        *slog.Logger

	prev *stateSnapshot
	last combat.Outcome
}

// Options configures a session.
type Options struct {
	Catalog    *skills.Catalog
	Controller combat.Config
	// Party is the shared party state. When nil the party state embedded in
	// each world snapshot is used.
	Party     combat.PartyState
	Publisher *Publisher
	// Commands defaults to sending over the connection.
	Commands         combat.Commands
	DisableCombat    bool
	DisableTargeting bool
	Logger           *slog.Logger
}

func New(conn *ipc.Connection, opts Options) (*Agent, error) {
	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", id.String())
	if conn != nil {
		conn.SetLogger(logger)
	}

	cmds := opts.Commands
	if cmds == nil {
		if conn == nil {
			return nil, fmt.Errorf("agent needs a connection or a command sink")
		}
		cmds = ipc.NewCommandSink(conn)
	}

	cfg := opts.Controller
	cfg.Logger = logger
	controller, err := combat.New(cfg, opts.Catalog, opts.Catalog, cmds)
	if err != nil {
		return nil, fmt.Errorf("create combat controller: %w", err)
	}
	logger.Info("session created",
		"skills", opts.Catalog.Len(),
		"uniqueRules", controller.UniqueRules().Len(),
		"mode", cfg.Mode,
		"sharedParty", opts.Party != nil,
	)

	return &Agent{
		ID:         id,
		Conn:       conn,
		controller: controller,
		party:      opts.Party,
		publisher:  opts.Publisher,
		overrides:  overrides{combatOff: opts.DisableCombat, targetingOff: opts.DisableTargeting},
		log:        logger,
	}, nil
}

// HandleHello completes the handshake so the client knows the bot is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Player = hello.Player
	a.Account = hello.Account
	if a.Conn != nil {
		a.Conn.Player = hello.Player
	}
	a.log = a.log.With("player", a.Player)
	a.log.Info("player identified", "account", a.Account, "agentId", hello.AgentID)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleWorldState runs one engine tick per snapshot.
func (a *Agent) HandleWorldState(env ipc.Envelope) (*ipc.Envelope, error) {
	var ws model.WorldState
	if err := json.Unmarshal(env.Data, &ws); err != nil {
		return nil, fmt.Errorf("unmarshal WorldState: %w", err)
	}
	a.Tick(ws)
	return nil, nil
}

// Tick feeds one snapshot through the engine and publishes the resulting
// member state.
func (a *Agent) Tick(ws model.WorldState) combat.Outcome {
	cur := takeSnapshot(ws)
	if events := detectEvents(a.prev, cur); len(events) > 0 {
		a.log.Info("world events", "time", ws.Time, "events", formatEvents(events))
	}
	a.prev = &cur

	out := a.controller.Tick(combat.Frame{
		World: model.NewSnapshot(ws),
		Party: a.partyFor(ws),
	})

	if out.State != a.last.State {
		a.log.Debug("combat state changed",
			"from", a.last.State,
			"to", out.State,
			"slot", out.Slot,
			"target", out.Target,
		)
	}
	a.last = out

	if a.publisher != nil {
		a.publisher.UpdateState(ws.Time, memberState(ws.Self, out))
	}
	return out
}

func (a *Agent) partyFor(ws model.WorldState) combat.PartyState {
	var p combat.PartyState = ws.Party
	if a.party != nil {
		p = a.party
	}
	if a.overrides.combatOff || a.overrides.targetingOff {
		o := a.overrides
		o.PartyState = p
		return o
	}
	return p
}

// overrides applies the local enable toggles on top of the shared ones.
type overrides struct {
	combat.PartyState
	combatOff    bool
	targetingOff bool
}

func (o overrides) CombatEnabled() bool {
	return !o.combatOff && o.PartyState.CombatEnabled()
}

func (o overrides) TargetingEnabled() bool {
	return !o.targetingOff && o.PartyState.TargetingEnabled()
}

// memberState is what the rest of the party needs to know about this agent.
// A cast issued this tick is reported before the client reflects it.
func memberState(self model.Self, out combat.Outcome) model.PartyMember {
	m := model.PartyMember{
		AgentID:      self.ID,
		X:            self.X,
		Y:            self.Y,
		TargetID:     self.TargetID,
		Attacking:    self.IsAttacking,
		Casting:      self.IsCasting,
		CastingSkill: self.CastingSkill,
	}
	switch out.State {
	case combat.StateCasting:
		if out.Slot >= 0 && out.Slot < len(self.SkillBar) {
			m.TargetID = out.Target
			m.Casting = true
			m.CastingSkill = self.SkillBar[out.Slot].SkillID
		}
	case combat.StateEngaging:
		m.TargetID = out.Target
		m.Attacking = true
	}
	return m
}
