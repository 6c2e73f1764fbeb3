package combat

import (
	"fmt"

	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

type fakeStore map[int]skills.Skill

func (s fakeStore) Skill(id int) (skills.Skill, bool) {
	sk, ok := s[id]
	return sk, ok
}

func (s fakeStore) ByName(name string) (skills.Skill, bool) {
	for _, sk := range s {
		if sk.Name == name {
			return sk, true
		}
	}
	return skills.Skill{}, false
}

// recorder captures issued commands as short strings.
type recorder struct {
	calls []string
}

func (r *recorder) UseSkill(slot, target int) error {
	r.calls = append(r.calls, fmt.Sprintf("use %d %d", slot, target))
	return nil
}

func (r *recorder) Interact(target int) error {
	r.calls = append(r.calls, fmt.Sprintf("interact %d", target))
	return nil
}

func (r *recorder) Move(x, y float64) error {
	r.calls = append(r.calls, fmt.Sprintf("move %.0f %.0f", x, y))
	return nil
}

func (r *recorder) CancelMovement() error {
	r.calls = append(r.calls, "cancel")
	return nil
}

const selfID = 1

func newSelf() model.Self {
	return model.Self{
		Agent: model.Agent{
			ID:         selfID,
			Allegiance: model.AllegianceAlly,
			Profession: model.ProfessionMonk,
			InParty:    true,
			HP:         1,
			MaxHP:      500,
			Energy:     1,
			MaxEnergy:  30,
		},
		WeaponRange:    model.RangeAdjacent,
		AttackInterval: 1.33,
	}
}

func enemy(id int, x, y float64) model.Agent {
	return model.Agent{
		ID:         id,
		X:          x,
		Y:          y,
		Allegiance: model.AllegianceEnemy,
		Profession: model.ProfessionWarrior,
		HP:         1,
		MaxHP:      480,
		Energy:     1,
		MaxEnergy:  25,
	}
}

func ally(id int, x, y, hp float64) model.Agent {
	return model.Agent{
		ID:         id,
		X:          x,
		Y:          y,
		Allegiance: model.AllegianceAlly,
		Profession: model.ProfessionWarrior,
		InParty:    true,
		HP:         hp,
		MaxHP:      480,
		Energy:     1,
		MaxEnergy:  25,
	}
}

func frameOf(ws model.WorldState) Frame {
	return Frame{World: model.NewSnapshot(ws), Party: ws.Party}
}

func slotOf(i int, sk skills.Skill) SkillSlot {
	return SkillSlot{Index: i, SkillID: sk.ID, Skill: sk, Known: sk.ID != 0}
}

func newTestEvaluator(mode TargetingMode) *Evaluator {
	return NewEvaluator(NewResolver(mode), NewUniqueRules(nil), nil)
}
