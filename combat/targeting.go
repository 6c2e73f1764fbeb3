package combat

import (
	"math"

	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// TargetingMode selects the global enemy-picking strategy.
type TargetingMode string

const (
	TargetingSmart  TargetingMode = "smart"
	TargetingAssist TargetingMode = "assist"
)

// Resolver picks a target agent for a skill. Nothing is cached between
// calls; every resolution reads the frame it is given.
type Resolver struct {
	mode TargetingMode
}

func NewResolver(mode TargetingMode) *Resolver {
	if mode != TargetingAssist {
		mode = TargetingSmart
	}
	return &Resolver{mode: mode}
}

func (r *Resolver) Mode() TargetingMode { return r.mode }

type agentFilter func(model.Agent) bool

// enemyQueries maps each narrowed enemy allegiance to its predicate.
var enemyQueries = map[skills.TargetAllegiance]agentFilter{
	skills.TargetEnemyCaster:        func(a model.Agent) bool { return a.Profession.IsCaster() },
	skills.TargetEnemyMartial:       func(a model.Agent) bool { return a.Profession.IsMartial() },
	skills.TargetEnemyMartialMelee:  model.Agent.IsMartialMelee,
	skills.TargetEnemyMartialRanged: model.Agent.IsMartialRanged,
	skills.TargetEnemyAttacking:     func(a model.Agent) bool { return a.IsAttacking },
	skills.TargetEnemyCasting:       func(a model.Agent) bool { return a.IsCasting },
	skills.TargetEnemyInjured:       func(a model.Agent) bool { return a.HP < injuredThreshold },
	skills.TargetEnemyConditioned:   func(a model.Agent) bool { return a.Conditions.Any() },
	skills.TargetEnemyHexed:         model.Agent.IsHexed,
	skills.TargetEnemyBleeding:      func(a model.Agent) bool { return a.Conditions.Bleeding },
	skills.TargetEnemyPoisoned:      func(a model.Agent) bool { return a.Conditions.Poison },
	skills.TargetEnemyCrippled:      func(a model.Agent) bool { return a.Conditions.Crippled },
	skills.TargetEnemyKnockedDown:   func(a model.Agent) bool { return a.IsKnockedDown },
	skills.TargetEnemyDegenHexed:    model.Agent.IsDegenHexed,
	skills.TargetEnemyEnchanted:     model.Agent.IsEnchanted,
	skills.TargetEnemyMoving:        func(a model.Agent) bool { return a.IsMoving },
}

// allyQueries maps each ally allegiance to its predicate.
var allyQueries = map[skills.TargetAllegiance]agentFilter{
	skills.TargetAlly:              func(model.Agent) bool { return true },
	skills.TargetOtherAlly:         func(model.Agent) bool { return true },
	skills.TargetAllyCaster:        func(a model.Agent) bool { return a.Profession.IsCaster() },
	skills.TargetAllyMartial:       func(a model.Agent) bool { return a.Profession.IsMartial() },
	skills.TargetAllyMartialMelee:  model.Agent.IsMartialMelee,
	skills.TargetAllyMartialRanged: model.Agent.IsMartialRanged,
}

// Resolve returns the agent id sk should be used on, or 0. When strict is set
// a narrowed enemy query that finds nothing does not fall back to the best
// enemy.
func (r *Resolver) Resolve(f Frame, sk skills.Skill, strict bool) int {
	self := f.World.Self()
	if f.Party != nil && !f.Party.TargetingEnabled() {
		return self.TargetID
	}

	a := sk.TargetAllegiance
	switch a {
	case skills.TargetEnemy:
		return r.BestEnemy(f)
	case skills.TargetEnemyClustered:
		if id := clusteredEnemy(f.World, combatRadius(f.World)); id != 0 || strict {
			return id
		}
		return r.BestEnemy(f)
	case skills.TargetSelf:
		return self.ID
	case skills.TargetPet:
		if pet, ok := f.World.Agent(self.PetID); ok && pet.Alive() {
			return pet.ID
		}
		return 0
	case skills.TargetDeadAlly:
		return nearest(f.World, combatRadius(f.World), func(x model.Agent) bool {
			return x.Dead && (x.IsAlly() || x.InParty)
		})
	case skills.TargetSpirit:
		return nearest(f.World, combatRadius(f.World), func(x model.Agent) bool {
			return x.Alive() && x.Allegiance == model.AllegianceSpirit
		})
	case skills.TargetMinion:
		return nearest(f.World, combatRadius(f.World), func(x model.Agent) bool {
			return x.Alive() && x.Allegiance == model.AllegianceMinion
		})
	case skills.TargetCorpse:
		return nearest(f.World, combatRadius(f.World), func(x model.Agent) bool {
			return x.Dead && x.Allegiance != model.AllegianceSpirit
		})
	}

	if q, ok := enemyQueries[a]; ok {
		id := nearest(f.World, combatRadius(f.World), func(x model.Agent) bool {
			return x.IsEnemy() && x.Alive() && q(x)
		})
		if id != 0 || strict {
			return id
		}
		return r.BestEnemy(f)
	}

	if q, ok := allyQueries[a]; ok {
		otherOnly := a == skills.TargetOtherAlly
		if sk.Nature == skills.NatureEnergyBuff {
			return lowestAlly(f.World, q, otherOnly, func(x model.Agent) float64 { return x.Energy })
		}
		return lowestAlly(f.World, q, otherOnly, func(x model.Agent) float64 { return x.HP })
	}

	return r.BestEnemy(f)
}

// BestEnemy asks the party's declared target first, then the active
// targeting mode, then the nearest enemy. The winner must pass the
// defensive filter.
func (r *Resolver) BestEnemy(f Frame) int {
	id := declaredTarget(f)
	if id == 0 {
		switch r.mode {
		case TargetingAssist:
			id = r.assist(f)
		default:
			id = r.smart(f)
		}
	}
	if id == 0 {
		id = nearest(f.World, combatRadius(f.World), func(x model.Agent) bool {
			return x.IsEnemy() && x.Alive()
		})
	}
	if id != 0 && !ValidDefensiveTarget(f, id) {
		return 0
	}
	return id
}

// declaredTarget is the leader's called target, or the leader's current
// target from shared state, when it is a living enemy in view.
func declaredTarget(f Frame) int {
	if f.Party == nil {
		return 0
	}
	candidates := []int{f.Party.CalledTarget()}
	leader := f.Party.LeaderID()
	if leader != 0 && leader != f.World.Self().ID {
		for _, m := range f.Party.Members() {
			if m.AgentID == leader {
				candidates = append(candidates, m.TargetID)
			}
		}
	}
	for _, id := range candidates {
		if a, ok := f.World.Agent(id); ok && a.IsEnemy() && a.Alive() {
			return id
		}
	}
	return 0
}

// nearest returns the closest agent within radius that satisfies keep.
func nearest(w World, radius float64, keep agentFilter) int {
	self := w.Self()
	best, bestDist := 0, math.MaxFloat64
	for _, a := range w.Agents() {
		if !keep(a) {
			continue
		}
		d := self.DistanceTo(a)
		if d > radius || d >= bestDist {
			continue
		}
		best, bestDist = a.ID, d
	}
	return best
}

// clusteredEnemy returns the living enemy with the most other living enemies
// inside area range of it. Ties go to the closer one.
func clusteredEnemy(w World, radius float64) int {
	self := w.Self()
	var enemies []model.Agent
	for _, a := range w.Agents() {
		if a.IsEnemy() && a.Alive() && self.DistanceTo(a) <= radius {
			enemies = append(enemies, a)
		}
	}
	best, bestCount, bestDist := 0, -1, math.MaxFloat64
	for _, a := range enemies {
		count := 0
		for _, b := range enemies {
			if b.ID != a.ID && a.DistanceTo(b) <= model.RangeArea {
				count++
			}
		}
		d := self.DistanceTo(a)
		if count > bestCount || (count == bestCount && d < bestDist) {
			best, bestCount, bestDist = a.ID, count, d
		}
	}
	return best
}

// lowestAlly returns the living ally with the smallest metric within the
// combat radius. The local player is considered first unless otherOnly.
func lowestAlly(w World, keep agentFilter, otherOnly bool, metric func(model.Agent) float64) int {
	self := w.Self()
	radius := combatRadius(w)
	best, bestVal := 0, math.MaxFloat64
	if !otherOnly && self.Alive() && keep(self.Agent) {
		best, bestVal = self.ID, metric(self.Agent)
	}
	for _, a := range w.Agents() {
		if !(a.IsAlly() || a.InParty) || a.Dead || !keep(a) {
			continue
		}
		if self.DistanceTo(a) > radius {
			continue
		}
		if v := metric(a); v < bestVal {
			best, bestVal = a.ID, v
		}
	}
	return best
}
