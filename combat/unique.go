package combat

import (
	"log/slog"

	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// RuleContext carries everything a unique rule may inspect.
type RuleContext struct {
	Frame  Frame
	Self   model.Self
	Target model.Agent
	Skill  skills.Skill
	Slot   SkillSlot
}

// UniqueRule is a hand-written cast predicate for one skill.
type UniqueRule func(ctx RuleContext) bool

// NameLookup resolves a skill display name to its catalog entry.
type NameLookup interface {
	ByName(name string) (skills.Skill, bool)
}

// UniqueRules maps skill ids to their hand-written predicates.
type UniqueRules struct {
	byID map[int]UniqueRule
}

// NewUniqueRules resolves the built-in rules against the catalog once.
// Rules whose skill is missing from the catalog are skipped.
func NewUniqueRules(lookup NameLookup) *UniqueRules {
	u := &UniqueRules{byID: make(map[int]UniqueRule)}
	if lookup == nil {
		return u
	}
	resolved := 0
	for name, rule := range builtinUniqueRules {
		sk, ok := lookup.ByName(name)
		if !ok {
			continue
		}
		u.byID[sk.ID] = rule
		resolved++
	}
	slog.Debug("unique rules resolved", "resolved", resolved, "builtin", len(builtinUniqueRules))
	return u
}

// Register adds or replaces the rule for a skill id.
func (u *UniqueRules) Register(id int, rule UniqueRule) {
	u.byID[id] = rule
}

func (u *UniqueRules) Lookup(id int) (UniqueRule, bool) {
	if u == nil {
		return nil, false
	}
	rule, ok := u.byID[id]
	return rule, ok
}

func (u *UniqueRules) Len() int {
	if u == nil {
		return 0
	}
	return len(u.byID)
}

func selfEnergyBelow(limit float64) UniqueRule {
	return func(ctx RuleContext) bool { return ctx.Self.Energy < limit }
}

func selfLifeBelow(limit float64) UniqueRule {
	return func(ctx RuleContext) bool { return ctx.Self.HP < limit }
}

func hexedOrConditioned(ctx RuleContext) bool {
	return ctx.Target.IsHexed() || ctx.Target.Conditions.Any()
}

func hexedOrEnchanted(ctx RuleContext) bool {
	return ctx.Target.IsHexed() || ctx.Target.IsEnchanted()
}

func spiritNearSelf(ctx RuleContext) bool {
	return countNear(ctx.Frame.World, ctx.Self.Agent, model.RangeEarshot, isLivingSpirit) > 0
}

func enemiesAdjacent(ctx RuleContext, n int) bool {
	return countNear(ctx.Frame.World, ctx.Target, model.RangeNearby, isLivingEnemy) >= n
}

// builtinUniqueRules are keyed by skill name and resolved to ids at load.
var builtinUniqueRules = map[string]UniqueRule{
	// Energy management.
	"Energy Drain":           selfEnergyBelow(0.25),
	"Energy Tap":             selfEnergyBelow(0.25),
	"Ether Lord":             selfEnergyBelow(0.3),
	"Clamor of Souls":        selfEnergyBelow(0.5),
	"Signet of Lost Souls":   func(ctx RuleContext) bool { return ctx.Target.HP < 0.5 },
	"Essence Strike":         func(ctx RuleContext) bool { return ctx.Self.Energy < 0.5 && spiritNearSelf(ctx) },
	"Glowing Signet":         func(ctx RuleContext) bool { return ctx.Self.Energy < 0.5 && ctx.Target.Conditions.Burning },
	"Waste Not, Want Not":    func(ctx RuleContext) bool { return ctx.Self.Energy < 0.5 && !ctx.Target.IsCasting && !ctx.Target.IsAttacking },
	"Offering of Spirit":     func(ctx RuleContext) bool { return ctx.Self.HP > 0.5 && ctx.Self.Energy < 0.5 },
	"Blood is Power":         func(ctx RuleContext) bool { return ctx.Self.HP > 0.5 && ctx.Target.Energy < 0.3 },
	"Blood Ritual":           func(ctx RuleContext) bool { return ctx.Self.HP > 0.5 && ctx.Target.Energy < 0.3 },
	"Auspicious Incantation": selfEnergyBelow(0.3),

	// Health trades.
	"Grenth's Balance":   func(ctx RuleContext) bool { return ctx.Self.HP < ctx.Target.HP },
	"Death's Charge":     func(ctx RuleContext) bool { return ctx.Self.HP < 0.6 && ctx.Target.HP > ctx.Self.HP },
	"Spoil Victor":       func(ctx RuleContext) bool { return ctx.Target.HP > ctx.Self.HP },
	"Desperate Strike":   selfLifeBelow(0.5),
	"Shroud of Distress": selfLifeBelow(0.6),
	"Mend Body and Soul": func(ctx RuleContext) bool { return ctx.Target.HP < 0.5 || ctx.Target.Conditions.Any() },
	"Seed of Life":       func(ctx RuleContext) bool { return ctx.Target.HP < 0.75 && enemiesAdjacent(ctx, 1) },
	"Unyielding Aura":    func(ctx RuleContext) bool { return ctx.Target.Dead },

	// Removal and punishment.
	"Unnatural Signet":  hexedOrEnchanted,
	"Discord":           func(ctx RuleContext) bool { return hexedOrEnchanted(ctx) && ctx.Target.Conditions.Any() },
	"Signet of Removal": hexedOrConditioned,
	"Empathic Removal":  hexedOrConditioned,
	"Iron Palm":         hexedOrConditioned,
	"Melandru's Shot":   func(ctx RuleContext) bool { return ctx.Target.IsEnchanted() || ctx.Target.Allegiance == model.AllegianceSpirit },
	"Plague Signet":     func(ctx RuleContext) bool { return ctx.Self.Conditions.Any() },
	"Plague Touch":      func(ctx RuleContext) bool { return ctx.Self.Conditions.Any() },

	// Support.
	"Splinter Weapon": func(ctx RuleContext) bool { return ctx.Target.IsAttacking },
	"Vow of Strength": func(ctx RuleContext) bool { return ctx.Frame.World.InAggro() && !ctx.Self.HasEffect(ctx.Skill.ID) },
	"Heroic Refrain":  func(ctx RuleContext) bool { return !ctx.Target.HasEffect(ctx.Skill.ID) },
}
