package combat

import (
	"testing"

	"github.com/nstehr/vanguard/vanguard-core/skills"
)

func assertPermutation(t *testing.T, order [SlotCount]int) {
	t.Helper()
	var seen [SlotCount]bool
	for _, idx := range order {
		if idx < 0 || idx >= SlotCount {
			t.Fatalf("index %d out of range in %v", idx, order)
		}
		if seen[idx] {
			t.Fatalf("index %d appears twice in %v", idx, order)
		}
		seen[idx] = true
	}
}

func TestOrderBuckets(t *testing.T) {
	o, err := NewOrderer(nil)
	if err != nil {
		t.Fatalf("NewOrderer: %v", err)
	}
	var slots [SlotCount]SkillSlot
	for i := range slots {
		slots[i] = SkillSlot{Index: i}
	}
	slots[0] = slotOf(0, skills.Skill{ID: 10, Static: skills.Static{Type: skills.TypeAttack}})
	slots[1] = slotOf(1, skills.Skill{ID: 11, Nature: skills.NatureHealing})
	slots[2] = slotOf(2, skills.Skill{ID: 12, Static: skills.Static{Type: skills.TypeEnchantment}})
	slots[4] = slotOf(4, skills.Skill{ID: 14, Static: skills.Static{Combo: skills.ComboDualAttack}})

	got := o.Order(slots)
	want := [SlotCount]int{1, 2, 0, 4, 3, 5, 6, 7}
	if got != want {
		t.Errorf("Order = %v, want %v", got, want)
	}
	assertPermutation(t, got)
}

func TestOrderKeepsSlotOrderWithinTier(t *testing.T) {
	o, _ := NewOrderer(nil)
	var slots [SlotCount]SkillSlot
	for i := range slots {
		slots[i] = SkillSlot{Index: i}
	}
	slots[5] = slotOf(5, skills.Skill{ID: 20, Nature: skills.NatureHealing})
	slots[2] = slotOf(2, skills.Skill{ID: 21, Nature: skills.NatureHealing})

	got := o.Order(slots)
	if got[0] != 2 || got[1] != 5 {
		t.Errorf("expected slot 2 before slot 5, got %v", got)
	}
	assertPermutation(t, got)
}

func TestOrderAuthoredTypeWins(t *testing.T) {
	o, _ := NewOrderer(nil)
	var slots [SlotCount]SkillSlot
	for i := range slots {
		slots[i] = SkillSlot{Index: i}
	}
	slots[0] = slotOf(0, skills.Skill{ID: 1, Static: skills.Static{Type: skills.TypeSpell}})
	slots[1] = slotOf(1, skills.Skill{ID: 2, AuthoredType: skills.TypeHex, Static: skills.Static{Type: skills.TypeSpell}})

	got := o.Order(slots)
	if got[0] != 1 {
		t.Errorf("hex should sort before spell, got %v", got)
	}
}

func TestOrderCustomTier(t *testing.T) {
	o, err := NewOrderer([]CustomTier{{Name: "cheap", Match: `EnergyCost <= 5 && Type == "attack"`}})
	if err != nil {
		t.Fatalf("NewOrderer: %v", err)
	}
	var slots [SlotCount]SkillSlot
	for i := range slots {
		slots[i] = SkillSlot{Index: i}
	}
	slots[0] = slotOf(0, skills.Skill{ID: 1, Nature: skills.NatureHealing})
	slots[1] = slotOf(1, skills.Skill{ID: 2, Nature: skills.NatureInterrupt})
	slots[2] = slotOf(2, skills.Skill{ID: 3, Static: skills.Static{EnergyCost: 5, Type: skills.TypeAttack}})
	slots[3] = slotOf(3, skills.Skill{ID: 4, Static: skills.Static{EnergyCost: 10, Type: skills.TypeAttack}})

	got := o.Order(slots)
	want := [SlotCount]int{1, 2, 0, 3, 4, 5, 6, 7}
	if got != want {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestOrderPermutationForAnyBar(t *testing.T) {
	o, _ := NewOrderer([]CustomTier{{Name: "all", Match: "true"}})
	natures := append([]skills.Nature{skills.NatureNone}, skills.NatureTiers...)
	for n := 0; n < 50; n++ {
		var slots [SlotCount]SkillSlot
		for i := range slots {
			if (n+i)%3 == 0 {
				slots[i] = SkillSlot{Index: i}
				continue
			}
			slots[i] = slotOf(i, skills.Skill{
				ID:     n*10 + i + 1,
				Nature: natures[(n*7+i)%len(natures)],
				Static: skills.Static{
					Type:  skills.TypeTiers[(n+i*5)%len(skills.TypeTiers)],
					Combo: skills.Combo((n + i) % 4),
				},
			})
		}
		assertPermutation(t, o.Order(slots))
	}
}

func TestNewOrdererRejectsBadTier(t *testing.T) {
	tests := []CustomTier{
		{Name: "syntax", Match: "EnergyCost +"},
		{Name: "not bool", Match: "EnergyCost + 1"},
		{Name: "unknown field", Match: "Mana > 3"},
	}
	for _, tt := range tests {
		if _, err := NewOrderer([]CustomTier{tt}); err == nil {
			t.Errorf("tier %q: expected compile error", tt.Name)
		}
	}
}
