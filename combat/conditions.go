package combat

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// ScriptEnv is what a ConditionSet script can see.
type ScriptEnv struct {
	Target  model.Agent
	Self    model.Agent
	InAggro bool
}

// scriptCache compiles each distinct script once. A script that fails to
// compile is remembered as nil and always evaluates false.
type scriptCache struct {
	mu       sync.Mutex
	programs map[string]*vm.Program
}

func (c *scriptCache) eval(src string, env ScriptEnv) bool {
	c.mu.Lock()
	if c.programs == nil {
		c.programs = make(map[string]*vm.Program)
	}
	prog, ok := c.programs[src]
	if !ok {
		var err error
		prog, err = expr.Compile(src, expr.Env(ScriptEnv{}), expr.AsBool())
		if err != nil {
			slog.Warn("condition script compile error", "script", src, "error", err)
			prog = nil
		}
		c.programs[src] = prog
	}
	c.mu.Unlock()

	if prog == nil {
		return false
	}
	result, err := vm.Run(prog, env)
	if err != nil {
		slog.Warn("condition script error", "script", src, "error", err)
		return false
	}
	match, ok := result.(bool)
	return ok && match
}

// tally counts configured predicates and how many of them hold.
type tally struct {
	configured int
	satisfied  int
}

func (t *tally) check(configured bool, holds func() bool) {
	if !configured {
		return
	}
	t.configured++
	if holds() {
		t.satisfied++
	}
}

// ConditionsMet decides whether the skill in slot may be used on target.
//
// Resurrection skills only need a dead target. Skills flagged with a unique
// property go to their registered rule and skip the generic predicates. All
// other skills pass when every configured predicate holds; a skill with no
// configured predicates always passes.
func (e *Evaluator) ConditionsMet(f Frame, slot SkillSlot, targetID int) bool {
	sk := slot.Skill
	target, ok := f.World.Agent(targetID)
	if !ok {
		return false
	}
	self := f.World.Self()

	if sk.Nature == skills.NatureResurrection {
		return target.Dead
	}

	if sk.Type() == skills.TypePetAttack {
		pet, ok := f.World.Agent(self.PetID)
		if !ok || pet.Dead || pet.HasEffect(sk.ID) || pet.CastingSkill == sk.ID {
			return false
		}
	}

	c := sk.Conditions
	if c.UniqueProperty {
		rule, ok := e.unique.Lookup(sk.ID)
		if !ok {
			return false
		}
		return rule(RuleContext{Frame: f, Self: self, Target: target, Skill: sk, Slot: slot})
	}

	var t tally
	t.check(c.HasCondition, target.Conditions.Any)
	t.check(c.HasBleeding, func() bool { return target.Conditions.Bleeding })
	t.check(c.HasBlindness, func() bool { return target.Conditions.Blind })
	t.check(c.HasBurning, func() bool { return target.Conditions.Burning })
	t.check(c.HasCrackedArmor, func() bool { return target.Conditions.CrackedArmor })
	t.check(c.HasCrippled, func() bool { return target.Conditions.Crippled })
	t.check(c.HasDazed, func() bool { return target.Conditions.Dazed })
	t.check(c.HasDeepWound, func() bool { return target.Conditions.DeepWound })
	t.check(c.HasDisease, func() bool { return target.Conditions.Disease })
	t.check(c.HasPoison, func() bool { return target.Conditions.Poison })
	t.check(c.HasWeakness, func() bool { return target.Conditions.Weakness })

	t.check(c.HasWeaponSpell, func() bool { return target.HasKindFrom(model.EffectWeaponSpell, c.WeaponSpellList) })
	t.check(c.HasEnchantment, func() bool { return target.HasKindFrom(model.EffectEnchantment, c.EnchantmentList) })
	t.check(c.HasDervishEnchantment, target.HasDervishEnchantment)
	t.check(c.HasHex, func() bool { return target.HasKindFrom(model.EffectHex, c.HexList) })
	t.check(c.HasChant, func() bool { return target.HasKindFrom(model.EffectChant, c.ChantList) })
	t.check(c.IsCasting, func() bool {
		if !target.IsCasting {
			return false
		}
		return len(c.CastingSkillList) == 0 || slices.Contains(c.CastingSkillList, target.CastingSkill)
	})
	t.check(c.IsKnockedDown, func() bool { return target.IsKnockedDown })
	t.check(c.IsMoving, func() bool { return target.IsMoving })
	t.check(c.IsAttacking, func() bool { return target.IsAttacking })
	t.check(c.IsHoldingItem, func() bool { return target.HoldingItem })

	life := target.HP
	if c.IsPartyWide {
		life = partyAverageLife(f, target, c.PartyWideArea)
	}
	t.check(c.LessLife != 0, func() bool { return life < c.LessLife })
	t.check(c.MoreLife != 0, func() bool { return life > c.MoreLife })
	t.check(c.LessEnergy != 0, func() bool { return target.Energy < c.LessEnergy })
	t.check(c.Overcast != 0, func() bool { return self.Overcast < c.Overcast })

	t.check(c.IsOutOfCombat, func() bool { return !f.World.InAggro() })
	t.check(c.IsInAggro, f.World.InAggro)

	t.check(c.EnemiesInRange != 0, func() bool {
		return countNear(f.World, target, orDefault(c.EnemiesInRangeArea, model.RangeArea), isLivingEnemy) >= c.EnemiesInRange
	})
	t.check(c.AlliesInRange != 0, func() bool {
		return countNear(f.World, target, orDefault(c.AlliesInRangeArea, model.RangeEarshot), isLivingAlly) >= c.AlliesInRange
	})
	t.check(c.SpiritsInRange != 0, func() bool {
		return countNear(f.World, target, orDefault(c.SpiritsInRangeArea, model.RangeEarshot), isLivingSpirit) >= c.SpiritsInRange
	})
	t.check(c.MinionsInRange != 0, func() bool {
		return countNear(f.World, target, orDefault(c.MinionsInRangeArea, model.RangeEarshot), isLivingMinion) >= c.MinionsInRange
	})

	t.check(c.Script != "", func() bool {
		return e.scripts.eval(c.Script, ScriptEnv{Target: target, Self: self.Agent, InAggro: f.World.InAggro()})
	})

	return t.configured == t.satisfied
}

func isLivingEnemy(a model.Agent) bool  { return a.IsEnemy() && a.Alive() }
func isLivingAlly(a model.Agent) bool   { return (a.IsAlly() || a.InParty) && a.Alive() }
func isLivingSpirit(a model.Agent) bool { return a.Allegiance == model.AllegianceSpirit && a.Alive() }
func isLivingMinion(a model.Agent) bool { return a.Allegiance == model.AllegianceMinion && a.Alive() }

// countNear counts agents matching keep within radius of center, excluding
// center itself. The local player is included when it matches.
func countNear(w World, center model.Agent, radius float64, keep agentFilter) int {
	n := 0
	self := w.Self()
	if self.ID != center.ID && keep(self.Agent) && center.DistanceTo(self.Agent) <= radius {
		n++
	}
	for _, a := range w.Agents() {
		if a.ID == center.ID || !keep(a) {
			continue
		}
		if center.DistanceTo(a) <= radius {
			n++
		}
	}
	return n
}

// partyAverageLife averages the health of living party members within radius
// of center, center included.
func partyAverageLife(f Frame, center model.Agent, radius float64) float64 {
	radius = orDefault(radius, model.RangeEarshot)
	self := f.World.Self()
	sum, n := 0.0, 0
	if self.Alive() && center.DistanceTo(self.Agent) <= radius {
		sum += self.HP
		n++
	}
	for _, a := range f.World.Agents() {
		if !a.InParty || a.Dead || center.DistanceTo(a) > radius {
			continue
		}
		sum += a.HP
		n++
	}
	if n == 0 {
		return center.HP
	}
	return sum / float64(n)
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
