package combat

import (
	"testing"

	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

func TestRegistryRebuild(t *testing.T) {
	store := fakeStore{5: {ID: 5, Name: "Healing Breeze"}}
	r := NewRegistry(store)

	var bar [SlotCount]model.SlotState
	bar[0] = model.SlotState{SkillID: 5}
	bar[1] = model.SlotState{SkillID: 99, Recharge: 1500}

	if !r.Rebuild(bar) {
		t.Error("first rebuild should report a change")
	}
	if r.Rebuild(bar) {
		t.Error("identical bar should not report a change")
	}

	if s := r.Slot(0); !s.Known || s.Skill.Name != "Healing Breeze" || !s.Usable() {
		t.Errorf("slot 0 = %+v, want known and usable", s)
	}
	if s := r.Slot(1); s.Known || s.Usable() {
		t.Errorf("slot 1 = %+v, want unknown and unusable", s)
	}
	if s := r.Slot(2); !s.Empty() {
		t.Errorf("slot 2 should be empty, got %+v", s)
	}
	if s := r.Slot(SlotCount); !s.Empty() {
		t.Errorf("out of range slot should be empty, got %+v", s)
	}

	bar[1].Recharge = 0
	if r.Rebuild(bar) {
		t.Error("recharge change alone should not report a change")
	}
	bar[2] = model.SlotState{SkillID: 5}
	if !r.Rebuild(bar) {
		t.Error("new skill should report a change")
	}
}

func TestSlotUsable(t *testing.T) {
	sk := skills.Skill{ID: 3}
	tests := []struct {
		name string
		slot SkillSlot
		want bool
	}{
		{"ready", SkillSlot{SkillID: 3, Skill: sk, Known: true}, true},
		{"empty", SkillSlot{}, false},
		{"unknown", SkillSlot{SkillID: 3}, false},
		{"recharging", SkillSlot{SkillID: 3, Skill: sk, Known: true, Recharge: 10}, false},
		{"disabled", SkillSlot{SkillID: 3, Skill: sk, Known: true, Disabled: true}, false},
	}
	for _, tt := range tests {
		if got := tt.slot.Usable(); got != tt.want {
			t.Errorf("%s: Usable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
