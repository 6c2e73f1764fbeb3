package combat

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/vanguard/vanguard-core/model"
)

// State is the controller's phase for the current tick.
type State string

const (
	StateIdle      State = "idle"
	StateAdvancing State = "advancing"
	StateEngaging  State = "engaging"
	StateCasting   State = "casting"
)

// Outcome reports what one tick decided. Handled is false when the engine
// abstained and outer follow logic may take over.
type Outcome struct {
	State   State
	Slot    int
	Target  int
	Handled bool
}

// Config tunes the controller. Durations are milliseconds.
type Config struct {
	Mode             TargetingMode
	CustomTiers      []CustomTier
	InteractThrottle int64
	AttackThrottle   int64
	StatusInterval   int64
	Logger           *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.InteractThrottle <= 0 {
		c.InteractThrottle = 1000
	}
	if c.AttackThrottle <= 0 {
		c.AttackThrottle = 500
	}
	if c.StatusInterval <= 0 {
		c.StatusInterval = 2000
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Controller runs one decision per tick: pick the slot under the rotating
// pointer, check it, and cast, move or abstain.
type Controller struct {
	registry  *Registry
	orderer   *Orderer
	order     [SlotCount]int
	resolver  *Resolver
	evaluator *Evaluator
	engage    Engagement
	aftercast *Aftercast
	cmds      Commands
	pointer   int

	interact *Throttle
	attack   *Throttle
	status   *Throttle
	log      *slog.Logger
}

// New wires the engine. lookup resolves unique rules by skill name and may
// be nil.
func New(cfg Config, store SkillStore, lookup NameLookup, cmds Commands) (*Controller, error) {
	cfg.applyDefaults()
	orderer, err := NewOrderer(cfg.CustomTiers)
	if err != nil {
		return nil, fmt.Errorf("build priority orderer: %w", err)
	}
	resolver := NewResolver(cfg.Mode)
	aftercast := &Aftercast{}
	c := &Controller{
		registry:  NewRegistry(store),
		orderer:   orderer,
		resolver:  resolver,
		evaluator: NewEvaluator(resolver, NewUniqueRules(lookup), aftercast),
		aftercast: aftercast,
		cmds:      cmds,
		interact:  NewThrottle(cfg.InteractThrottle),
		attack:    NewThrottle(cfg.AttackThrottle),
		status:    NewThrottle(cfg.StatusInterval),
		log:       cfg.Logger,
	}
	for i := range c.order {
		c.order[i] = i
	}
	return c, nil
}

// Pointer returns the rotating position in the priority order.
func (c *Controller) Pointer() int { return c.pointer }

// Order returns the current priority order.
func (c *Controller) Order() [SlotCount]int { return c.order }

// Evaluator exposes the eligibility checks, mainly for diagnostics.
func (c *Controller) Evaluator() *Evaluator { return c.evaluator }

// UniqueRules exposes the per-skill rule registry so callers can add rules.
func (c *Controller) UniqueRules() *UniqueRules { return c.evaluator.unique }

// Tick makes one decision.
func (c *Controller) Tick(f Frame) Outcome {
	now := f.World.Now()
	self := f.World.Self()

	if f.Party != nil && !f.Party.CombatEnabled() {
		return Outcome{State: StateIdle, Slot: -1}
	}
	if self.Dead {
		return Outcome{State: StateIdle, Slot: -1}
	}

	if c.registry.Rebuild(self.SkillBar) {
		c.order = c.orderer.Order(c.registry.Slots())
		c.pointer = 0
		c.log.Info("skillbar changed", "order", c.order)
	}

	if c.aftercast.Busy(now, self.IsCasting) {
		return Outcome{State: StateCasting, Slot: -1}
	}

	idx := c.order[c.pointer]
	slot := c.registry.Slot(idx)
	wrapped := c.advance()

	// Any slot that cannot fire on the wrapping tick hands over to the
	// player's own target, so empty or recharging tail slots never starve it.
	skip := func(target int) Outcome {
		if wrapped {
			return c.engageCurrentTarget(f)
		}
		return Outcome{State: StateIdle, Slot: idx, Target: target}
	}

	if !slot.Usable() || (f.Party != nil && !f.Party.SkillEnabled(idx)) {
		return skip(0)
	}
	if !f.World.InAggro() && !slot.Skill.Conditions.FiresOutOfCombat() {
		return skip(0)
	}

	ok, target := c.evaluator.IsReadyToCast(f, slot)
	if !ok {
		return skip(target)
	}

	skillRange := slot.Skill.Static.Range
	if skillRange <= 0 {
		skillRange = weaponRange(self)
	}

	decision, t := c.engage.Decide(f, target, skillRange)
	switch decision {
	case DecisionApproach:
		c.approach(now, t)
		return Outcome{State: StateAdvancing, Slot: idx, Target: target, Handled: true}
	case DecisionInRange:
		c.cast(f, slot, target)
		return Outcome{State: StateCasting, Slot: idx, Target: target, Handled: true}
	default:
		return Outcome{State: StateIdle, Slot: idx, Target: target}
	}
}

// advance moves the pointer and reports whether it wrapped to the start.
func (c *Controller) advance() bool {
	c.pointer = (c.pointer + 1) % SlotCount
	return c.pointer == 0
}

func (c *Controller) cast(f Frame, slot SkillSlot, target int) {
	self := f.World.Self()
	if err := c.cmds.UseSkill(slot.Index, target); err != nil {
		c.log.Error("use skill failed", "slot", slot.Index, "skill", slot.Skill.Name, "target", target, "error", err)
		return
	}
	c.aftercast.Start(f.World.Now(), slot.Skill, self.AttackInterval, f.World.Latency())
	c.pointer = 0
	c.log.Debug("skill cast",
		"slot", slot.Index,
		"skill", slot.Skill.Name,
		"target", target,
		"aftercastUntil", c.aftercast.Deadline(),
	)
}

// approach closes distance: enemies are interacted with so the client paths
// and attacks; anything else is walked to.
func (c *Controller) approach(now int64, target model.Agent) {
	if !c.interact.Ready(now) {
		return
	}
	if err := c.cmds.CancelMovement(); err != nil {
		c.log.Warn("cancel movement failed", "error", err)
	}
	var err error
	if target.IsEnemy() {
		err = c.cmds.Interact(target.ID)
	} else {
		err = c.cmds.Move(target.X, target.Y)
	}
	if err != nil {
		c.log.Warn("approach failed", "target", target.ID, "error", err)
	}
}

// engageCurrentTarget runs once per full rotation with nothing castable:
// keep pressure on whatever the player has targeted.
func (c *Controller) engageCurrentTarget(f Frame) Outcome {
	now := f.World.Now()
	self := f.World.Self()
	target, ok := f.World.Agent(self.TargetID)
	if !ok || !target.IsEnemy() || target.Dead {
		c.logStatus(now, "no target")
		return Outcome{State: StateIdle, Slot: -1}
	}

	decision, t := c.engage.Decide(f, target.ID, weaponRange(self))
	switch decision {
	case DecisionApproach:
		c.approach(now, t)
		return Outcome{State: StateAdvancing, Slot: -1, Target: t.ID, Handled: true}
	case DecisionInRange:
		if !self.IsAttacking && !self.IsCasting && c.attack.Ready(now) {
			if err := c.cmds.Interact(t.ID); err != nil {
				c.log.Warn("attack failed", "target", t.ID, "error", err)
			}
		}
		return Outcome{State: StateEngaging, Slot: -1, Target: t.ID, Handled: true}
	default:
		c.logStatus(now, "target out of reach")
		return Outcome{State: StateIdle, Slot: -1, Target: t.ID}
	}
}

func (c *Controller) logStatus(now int64, msg string) {
	if !c.status.Ready(now) {
		return
	}
	c.log.Debug("combat status", "status", msg, "pointer", c.pointer, "mode", c.resolver.Mode())
}

// weaponRange falls back to melee reach when the client reports nothing.
func weaponRange(self model.Self) float64 {
	if self.WeaponRange > 0 {
		return self.WeaponRange
	}
	return model.RangeAdjacent
}
