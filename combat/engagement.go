package combat

import (
	"math"

	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// CastState is whether the agent is inside an aftercast window.
type CastState int

const (
	CastIdle CastState = iota
	CastInAftercast
)

// Aftercast tracks the window after a cast during which no new action may be
// issued.
type Aftercast struct {
	state    CastState
	deadline int64
}

// Start opens the window: activation, aftercast, one weapon swing for attack
// skills, and the measured latency.
func (a *Aftercast) Start(now int64, sk skills.Skill, attackInterval float64, latency int64) {
	ms := (sk.Static.Activation + sk.Static.Aftercast) * 1000
	if sk.Static.IsAttack() {
		ms += attackInterval * 1000
	}
	a.deadline = now + int64(math.Round(ms)) + latency
	a.state = CastInAftercast
}

// Busy reports whether a new action must wait. The client's casting flag
// blocks while it is raised; once it clears, only the deadline matters.
func (a *Aftercast) Busy(now int64, externallyCasting bool) bool {
	if a.state == CastInAftercast && now >= a.deadline {
		a.state = CastIdle
	}
	return externallyCasting || a.state == CastInAftercast
}

func (a *Aftercast) State() CastState { return a.state }

func (a *Aftercast) Deadline() int64 { return a.deadline }

// Decision is what to do about a target at a given range.
type Decision int

const (
	DecisionAbstain Decision = iota
	DecisionApproach
	DecisionInRange
)

func (d Decision) String() string {
	switch d {
	case DecisionApproach:
		return "approach"
	case DecisionInRange:
		return "in_range"
	default:
		return "abstain"
	}
}

// EngageInput holds the distances CanEngage needs. Leader distances are
// ignored when HasLeader is false.
type EngageInput struct {
	Distance       float64
	SkillRange     float64
	LeaderTarget   bool
	HasLeader      bool
	SelfToLeader   float64
	TargetToLeader float64
}

// CanEngage reports whether chasing the target is allowed. The leader's
// called target may be chased further; any other target must stay within
// combat distance, and neither the agent nor the target may stray far from
// the leader.
func CanEngage(in EngageInput) bool {
	limit := combatDistance
	if in.LeaderTarget {
		limit = leaderTargetLimit
	}
	if in.Distance > limit {
		return false
	}
	if in.Distance > 1.5*in.SkillRange && in.Distance > combatDistance && !in.LeaderTarget {
		return false
	}
	if in.HasLeader {
		if in.SelfToLeader > followLeash {
			return false
		}
		if !in.LeaderTarget && in.TargetToLeader > leaderTargetLeash {
			return false
		}
	}
	return true
}

// Engagement turns a target and a range into a move, attack or abstain
// decision.
type Engagement struct{}

// Decide classifies the target. Dead or unknown targets are abstained from.
func (Engagement) Decide(f Frame, targetID int, skillRange float64) (Decision, model.Agent) {
	target, ok := f.World.Agent(targetID)
	if !ok {
		return DecisionAbstain, model.Agent{}
	}
	self := f.World.Self()
	if target.Dead && target.IsEnemy() {
		return DecisionAbstain, target
	}

	dist := self.DistanceTo(target)
	if dist <= skillRange || target.ID == self.ID {
		return DecisionInRange, target
	}

	in := EngageInput{
		Distance:   dist,
		SkillRange: skillRange,
	}
	if f.Party != nil {
		in.LeaderTarget = targetID == declaredTarget(f)
		leaderID := f.Party.LeaderID()
		if leaderID != 0 && leaderID != self.ID {
			if x, y, ok := leaderPosition(f, leaderID); ok {
				in.HasLeader = true
				in.SelfToLeader = model.Distance(self.X, self.Y, x, y)
				in.TargetToLeader = model.Distance(target.X, target.Y, x, y)
			}
		}
	}
	if CanEngage(in) {
		return DecisionApproach, target
	}
	return DecisionAbstain, target
}

func leaderPosition(f Frame, leaderID int) (float64, float64, bool) {
	for _, p := range partyPositions(f) {
		if p.id == leaderID {
			return p.x, p.y, true
		}
	}
	return 0, 0, false
}
