package combat

import (
	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

// SlotCount is the size of a skillbar.
const SlotCount = 8

// SkillSlot is an immutable view of one skillbar slot. SkillID 0 is an empty
// slot. Known is false when the store has no metadata for the skill.
type SkillSlot struct {
	Index      int
	SkillID    int
	Recharge   int64
	Adrenaline int
	Disabled   bool
	Skill      skills.Skill
	Known      bool
}

func (s SkillSlot) Empty() bool { return s.SkillID == 0 }

// Usable reports whether the slot holds a known skill that is neither
// recharging nor disabled.
func (s SkillSlot) Usable() bool {
	return !s.Empty() && s.Known && s.Recharge <= 0 && !s.Disabled
}

// Registry snapshots the skillbar and remembers the loadout so callers know
// when the priority order must be recomputed.
type Registry struct {
	store   SkillStore
	slots   [SlotCount]SkillSlot
	loadout [SlotCount]int
	built   bool
}

func NewRegistry(store SkillStore) *Registry {
	return &Registry{store: store}
}

// Rebuild refreshes every slot from bar. It reports true when the set of
// skill ids changed since the previous rebuild.
func (r *Registry) Rebuild(bar [SlotCount]model.SlotState) bool {
	changed := !r.built
	for i, st := range bar {
		if r.loadout[i] != st.SkillID {
			changed = true
		}
		r.loadout[i] = st.SkillID

		slot := SkillSlot{
			Index:      i,
			SkillID:    st.SkillID,
			Recharge:   st.Recharge,
			Adrenaline: st.Adrenaline,
			Disabled:   st.Disabled,
		}
		if st.SkillID != 0 && r.store != nil {
			slot.Skill, slot.Known = r.store.Skill(st.SkillID)
		}
		r.slots[i] = slot
	}
	r.built = true
	return changed
}

// Slot returns the snapshot of slot i. Out-of-range indexes yield an empty
// slot.
func (r *Registry) Slot(i int) SkillSlot {
	if i < 0 || i >= SlotCount {
		return SkillSlot{Index: i}
	}
	return r.slots[i]
}

func (r *Registry) Slots() [SlotCount]SkillSlot { return r.slots }
