package combat

import (
	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// Evaluator decides whether a slot can be used right now and on whom.
type Evaluator struct {
	resolver  *Resolver
	unique    *UniqueRules
	aftercast *Aftercast
	scripts   scriptCache
}

func NewEvaluator(resolver *Resolver, unique *UniqueRules, aftercast *Aftercast) *Evaluator {
	if aftercast == nil {
		aftercast = &Aftercast{}
	}
	return &Evaluator{resolver: resolver, unique: unique, aftercast: aftercast}
}

// IsReadyToCast runs the cheap checks first and only resolves a target once
// resources allow the cast. The returned id is the resolved target, or 0 if
// resolution was not reached or found nothing.
func (e *Evaluator) IsReadyToCast(f Frame, slot SkillSlot) (bool, int) {
	if slot.Empty() || !slot.Known {
		return false, 0
	}
	sk := slot.Skill
	self := f.World.Self()

	if e.aftercast.Busy(f.World.Now(), self.IsCasting) {
		return false, 0
	}
	if slot.Recharge > 0 {
		return false, 0
	}
	if self.CurrentEnergy() < energyCost(sk, self.Expertise) {
		return false, 0
	}
	if sk.Static.HealthCost > 0 && sk.Static.HealthCost*float64(self.MaxHP) > self.CurrentHP() {
		return false, 0
	}
	if slot.Adrenaline < sk.Static.AdrenalineCost {
		return false, 0
	}
	if spiritBuffActive(f.World, sk) {
		return false, 0
	}

	target := e.resolver.Resolve(f, sk, sk.Conditions.TargetingStrict)
	if target == 0 {
		return false, 0
	}

	if sk.Static.Combo != skills.ComboNone {
		t, ok := f.World.Agent(target)
		if !ok || !comboReady(sk.Static.Combo, t.DaggerStatus) {
			return false, target
		}
	}

	if !e.ConditionsMet(f, slot, target) {
		return false, target
	}

	if effectAlreadyApplied(f, sk, target) {
		return false, target
	}
	return true, target
}

// energyCost applies the expertise discount for eligible skills.
func energyCost(sk skills.Skill, expertise int) float64 {
	cost := float64(sk.Static.EnergyCost)
	if sk.Static.ExpertiseEligible && expertise > 0 {
		cost *= 1 - expertiseReduction*float64(expertise)
		if cost < 0 {
			cost = 0
		}
	}
	return cost
}

// comboReady checks the target's dagger status against the step the skill
// continues. A lead attack starts a chain, so it needs no open chain or a
// finished one.
func comboReady(c skills.Combo, daggerStatus int) bool {
	switch c {
	case skills.ComboLeadAttack:
		return daggerStatus == int(skills.ComboNone) || daggerStatus == int(skills.ComboDualAttack)
	case skills.ComboOffHand:
		return daggerStatus == int(skills.ComboLeadAttack)
	case skills.ComboDualAttack:
		return daggerStatus == int(skills.ComboOffHand)
	}
	return true
}

// spiritBuffActive reports whether a ritual's spirit is already up in range.
func spiritBuffActive(w World, sk skills.Skill) bool {
	if sk.Type() != skills.TypeRitual {
		return false
	}
	self := w.Self()
	for _, a := range w.Agents() {
		if a.Allegiance != model.AllegianceSpirit || a.Dead || a.SpawnSkill != sk.ID {
			continue
		}
		if self.DistanceTo(a) <= model.RangeSpirit {
			return true
		}
	}
	return false
}

// effectAlreadyApplied reports whether the target already carries the skill's
// effect, or another party member is casting the same skill on it.
func effectAlreadyApplied(f Frame, sk skills.Skill, target int) bool {
	t, ok := f.World.Agent(target)
	if !ok {
		return false
	}
	if t.HasEffect(sk.ID) {
		return true
	}

	self := f.World.Self()
	for _, a := range f.World.Agents() {
		if a.InParty && a.ID != self.ID && a.IsCasting && a.CastingSkill == sk.ID && a.TargetID == target {
			return true
		}
	}
	if f.Party == nil {
		return false
	}
	for _, m := range f.Party.Members() {
		if m.AgentID != self.ID && m.Casting && m.CastingSkill == sk.ID && m.TargetID == target {
			return true
		}
	}
	return false
}
