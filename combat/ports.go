package combat

import (
	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// World is the read side of the game client. Every call is a point read of a
// live snapshot; unknown ids report false rather than failing.
type World interface {
	Now() int64     // milliseconds
	Latency() int64 // milliseconds
	InAggro() bool
	Self() model.Self
	Agent(id int) (model.Agent, bool)
	Agents() []model.Agent
}

// PartyState is the cross-process view of the party. The engine only reads it
// and must tolerate empty rosters and zero ids.
type PartyState interface {
	LeaderID() int
	CalledTarget() int
	Members() []model.PartyMember
	CombatEnabled() bool
	TargetingEnabled() bool
	SkillEnabled(slot int) bool
}

// Commands issues orders to the game client. Orders are fire-and-forget.
type Commands interface {
	UseSkill(slot, target int) error
	Interact(target int) error
	Move(x, y float64) error
	CancelMovement() error
}

// SkillStore supplies per-skill metadata.
type SkillStore interface {
	Skill(id int) (skills.Skill, bool)
}

// Frame is the input of a single tick.
type Frame struct {
	World World
	Party PartyState
}

const (
	combatDistance     = 2800.0
	smartScanDistance  = 5000.0
	leaderTargetLimit  = 5000.0
	followLeash        = 2000.0
	leaderTargetLeash  = model.RangeCompass
	supportRadius      = 1250.0
	injuredThreshold   = 0.75
	expertiseReduction = 0.04
)

// combatRadius is how far target searches reach: the full combat distance
// while engaged, earshot otherwise.
func combatRadius(w World) float64 {
	if w.InAggro() {
		return combatDistance
	}
	return model.RangeEarshot
}
