package combat

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// CustomTier is a user-defined priority bucket. Match is an expr boolean
// evaluated against TierEnv.
type CustomTier struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Match string `mapstructure:"match" yaml:"match"`
}

// TierEnv is what a custom tier expression can see. Fields are plain types so
// expressions compare against string and number literals directly.
type TierEnv struct {
	Slot       int
	ID         int
	Name       string
	Nature     string
	Type       string
	Target     string
	EnergyCost int
	Adrenaline int
	Recharge   float64
	Range      float64
	Combo      int
	Profession string
}

func newTierEnv(s SkillSlot) TierEnv {
	sk := s.Skill
	return TierEnv{
		Slot:       s.Index,
		ID:         sk.ID,
		Name:       sk.Name,
		Nature:     string(sk.Nature),
		Type:       string(sk.Type()),
		Target:     string(sk.TargetAllegiance),
		EnergyCost: sk.Static.EnergyCost,
		Adrenaline: sk.Static.AdrenalineCost,
		Recharge:   sk.Static.Recharge,
		Range:      sk.Static.Range,
		Combo:      int(sk.Static.Combo),
		Profession: sk.Static.Profession,
	}
}

type compiledTier struct {
	name    string
	program *vm.Program
}

// Orderer turns a skillbar into a fixed evaluation order.
//
// Buckets are filled in three passes: nature tiers interleaved with the
// custom tiers, then mechanical types, then combo roles. Within a bucket
// slots keep their original order, and anything left over is appended last,
// so the result is always a permutation of 0..7.
type Orderer struct {
	custom []compiledTier
}

// NewOrderer compiles the custom tiers. A tier that fails to compile is an
// error so a bad config is caught at startup rather than on every tick.
func NewOrderer(tiers []CustomTier) (*Orderer, error) {
	o := &Orderer{}
	for _, t := range tiers {
		prog, err := expr.Compile(t.Match, expr.Env(TierEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile custom tier %q: %w", t.Name, err)
		}
		o.custom = append(o.custom, compiledTier{name: t.Name, program: prog})
	}
	return o, nil
}

// Order returns slot indexes in evaluation order.
func (o *Orderer) Order(slots [SlotCount]SkillSlot) [SlotCount]int {
	var (
		out      [SlotCount]int
		n        int
		assigned [SlotCount]bool
	)
	bucket := func(match func(SkillSlot) bool) {
		for i := range slots {
			if assigned[i] || !match(slots[i]) {
				continue
			}
			assigned[i] = true
			out[n] = i
			n++
		}
	}

	for i, nature := range skills.NatureTiers {
		bucket(func(s SkillSlot) bool {
			return !s.Empty() && s.Skill.Nature == nature
		})
		if i < len(o.custom) {
			bucket(o.customMatcher(o.custom[i]))
		}
	}
	for i := len(skills.NatureTiers); i < len(o.custom); i++ {
		bucket(o.customMatcher(o.custom[i]))
	}

	for _, t := range skills.TypeTiers {
		bucket(func(s SkillSlot) bool {
			return !s.Empty() && s.Skill.Type() == t
		})
	}

	for _, c := range skills.ComboTiers {
		bucket(func(s SkillSlot) bool {
			return !s.Empty() && s.Skill.Static.Combo == c
		})
	}

	bucket(func(SkillSlot) bool { return true })
	return out
}

func (o *Orderer) customMatcher(t compiledTier) func(SkillSlot) bool {
	return func(s SkillSlot) bool {
		if s.Empty() || !s.Known {
			return false
		}
		result, err := vm.Run(t.program, newTierEnv(s))
		if err != nil {
			slog.Warn("custom tier error", "tier", t.name, "slot", s.Index, "error", err)
			return false
		}
		match, ok := result.(bool)
		return ok && match
	}
}
