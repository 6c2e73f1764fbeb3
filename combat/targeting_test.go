package combat

import (
	"testing"

	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

func TestValidDefensiveTargetBoundary(t *testing.T) {
	attacker := enemy(12, 3000, 0)
	attacker.IsAttacking = true
	attacker.TargetID = selfID
	farAttacker := enemy(13, 3600, 0)
	farAttacker.IsAttacking = true
	farAttacker.TargetID = selfID

	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents: []model.Agent{
			enemy(10, model.RangeEarshot, 0),
			enemy(11, model.RangeEarshot+1, 0),
			attacker,
			farAttacker,
			enemy(14, 4000, 0),
		},
		Party: model.PartyState{
			Roster: []model.PartyMember{{AgentID: 3, X: 4000, Y: 100, TargetID: 14, Attacking: true}},
		},
	}
	f := frameOf(ws)

	tests := []struct {
		id   int
		want bool
	}{
		{10, true},
		{11, false},
		{12, true},
		{13, false},
		{14, true},
		{99, false},
	}
	for _, tt := range tests {
		if got := ValidDefensiveTarget(f, tt.id); got != tt.want {
			t.Errorf("ValidDefensiveTarget(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSmartTieBreakIsDeterministic(t *testing.T) {
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents:  []model.Agent{enemy(20, 500, 0), enemy(21, -500, 0)},
	}
	r := NewResolver(TargetingSmart)
	for i := 0; i < 100; i++ {
		if got := r.BestEnemy(frameOf(ws)); got != 20 {
			t.Fatalf("run %d: BestEnemy = %d, want 20", i, got)
		}
	}
}

func TestSmartPrefersHealers(t *testing.T) {
	monk := enemy(31, -500, 0)
	monk.Profession = model.ProfessionMonk
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents:  []model.Agent{enemy(30, 500, 0), monk},
	}
	if got := NewResolver(TargetingSmart).BestEnemy(frameOf(ws)); got != 31 {
		t.Errorf("BestEnemy = %d, want the monk", got)
	}
}

func TestSmartScoreLeaderTarget(t *testing.T) {
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents:  []model.Agent{enemy(40, 500, 0), enemy(41, 500, 10)},
		Party:   model.PartyState{Called: 41},
	}
	f := frameOf(ws)
	a, _ := f.World.Agent(40)
	b, _ := f.World.Agent(41)
	if SmartScore(f, b)-SmartScore(f, a) < smartLeaderTarget-1 {
		t.Errorf("leader target should score about %v higher: %v vs %v", smartLeaderTarget, SmartScore(f, b), SmartScore(f, a))
	}
}

func TestBestEnemyPrefersCalledTarget(t *testing.T) {
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents:  []model.Agent{enemy(50, 200, 0), enemy(51, 900, 0)},
		Party:   model.PartyState{Called: 51},
	}
	for _, mode := range []TargetingMode{TargetingSmart, TargetingAssist} {
		if got := NewResolver(mode).BestEnemy(frameOf(ws)); got != 51 {
			t.Errorf("%s: BestEnemy = %d, want called target 51", mode, got)
		}
	}
}

func TestBestEnemyFollowsLeaderSharedTarget(t *testing.T) {
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents:  []model.Agent{enemy(50, 200, 0), enemy(51, 900, 0)},
		Party: model.PartyState{
			Leader: 2,
			Roster: []model.PartyMember{{AgentID: 2, TargetID: 51}},
		},
	}
	if got := NewResolver(TargetingSmart).BestEnemy(frameOf(ws)); got != 51 {
		t.Errorf("BestEnemy = %d, want leader's target 51", got)
	}
}

func TestAssistPlurality(t *testing.T) {
	self := newSelf()
	self.IsAttacking = true
	self.TargetID = 61
	ws := model.WorldState{
		InAggro: true,
		Self:    self,
		Agents:  []model.Agent{enemy(60, 600, 0), enemy(61, 300, 0), enemy(62, 700, 0)},
		Party: model.PartyState{
			Roster: []model.PartyMember{
				{AgentID: 2, TargetID: 62, Attacking: true},
				{AgentID: 3, TargetID: 60, Casting: true},
				{AgentID: 4, TargetID: 62, Attacking: true},
			},
		},
	}
	r := NewResolver(TargetingAssist)
	if got := r.BestEnemy(frameOf(ws)); got != 62 {
		t.Errorf("BestEnemy = %d, want 62 with two members on it", got)
	}

	ws.Party.Roster[0].TargetID = 61
	ws.Party.Roster[1].TargetID = 60
	ws.Party.Roster[2].TargetID = 61
	ws.Party.Roster = append(ws.Party.Roster, model.PartyMember{AgentID: 5, TargetID: 60, Attacking: true})
	// 60 and 61 both have two members; the lower id wins.
	if got := r.BestEnemy(frameOf(ws)); got != 60 {
		t.Errorf("BestEnemy = %d, want 60 on a tie", got)
	}
}

func TestAssistFallsBackToSmart(t *testing.T) {
	monk := enemy(71, 600, 0)
	monk.Profession = model.ProfessionMonk
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents:  []model.Agent{enemy(70, 400, 0), monk},
	}
	if got := NewResolver(TargetingAssist).BestEnemy(frameOf(ws)); got != 71 {
		t.Errorf("BestEnemy = %d, want smart pick 71", got)
	}
}

func TestResolveTargetingDisabled(t *testing.T) {
	self := newSelf()
	self.TargetID = 77
	ws := model.WorldState{
		Self:   self,
		Agents: []model.Agent{enemy(10, 100, 0)},
		Party:  model.PartyState{TargetingDisabled: true},
	}
	sk := skills.Skill{ID: 1, TargetAllegiance: skills.TargetEnemy}
	if got := NewResolver(TargetingSmart).Resolve(frameOf(ws), sk, false); got != 77 {
		t.Errorf("Resolve = %d, want the player's own target 77", got)
	}
}

func TestResolveNarrowedEnemy(t *testing.T) {
	caster := enemy(11, 800, 0)
	caster.Profession = model.ProfessionElementalist
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents:  []model.Agent{enemy(10, 300, 0), caster},
	}
	r := NewResolver(TargetingSmart)
	sk := skills.Skill{ID: 1, TargetAllegiance: skills.TargetEnemyCaster}
	if got := r.Resolve(frameOf(ws), sk, false); got != 11 {
		t.Errorf("Resolve = %d, want the caster", got)
	}

	ws.Agents = ws.Agents[:1]
	if got := r.Resolve(frameOf(ws), sk, true); got != 0 {
		t.Errorf("strict Resolve = %d, want 0", got)
	}
	if got := r.Resolve(frameOf(ws), sk, false); got != 10 {
		t.Errorf("lenient Resolve = %d, want fallback 10", got)
	}
}

func TestResolveAllies(t *testing.T) {
	low := ally(3, 400, 0, 0.3)
	low.Energy = 0.9
	drained := ally(4, 500, 0, 0.8)
	drained.Energy = 0.1
	self := newSelf()
	self.HP = 0.2
	ws := model.WorldState{
		Self:   self,
		Agents: []model.Agent{low, drained, ally(5, 5000, 0, 0.05)},
	}
	f := frameOf(ws)
	r := NewResolver(TargetingSmart)

	tests := []struct {
		name string
		sk   skills.Skill
		want int
	}{
		{"ally includes self", skills.Skill{ID: 1, TargetAllegiance: skills.TargetAlly}, selfID},
		{"other ally skips self", skills.Skill{ID: 1, TargetAllegiance: skills.TargetOtherAlly}, 3},
		{"energy buff", skills.Skill{ID: 1, TargetAllegiance: skills.TargetOtherAlly, Nature: skills.NatureEnergyBuff}, 4},
		{"self", skills.Skill{ID: 1, TargetAllegiance: skills.TargetSelf}, selfID},
		{"martial ally", skills.Skill{ID: 1, TargetAllegiance: skills.TargetAllyMartial}, 3},
	}
	for _, tt := range tests {
		if got := r.Resolve(f, tt.sk, false); got != tt.want {
			t.Errorf("%s: Resolve = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestResolveSpecialTargets(t *testing.T) {
	corpse := ally(3, 300, 0, 0)
	corpse.Dead = true
	pet := model.Agent{ID: 8, X: 50, Allegiance: model.AllegianceSpirit, HP: 1}
	spirit := model.Agent{ID: 9, X: 600, Allegiance: model.AllegianceSpirit, HP: 1}
	self := newSelf()
	self.PetID = 8
	ws := model.WorldState{
		InAggro: true,
		Self:    self,
		Agents:  []model.Agent{corpse, pet, spirit},
	}
	f := frameOf(ws)
	r := NewResolver(TargetingSmart)

	if got := r.Resolve(f, skills.Skill{TargetAllegiance: skills.TargetDeadAlly}, false); got != 3 {
		t.Errorf("dead ally = %d, want 3", got)
	}
	if got := r.Resolve(f, skills.Skill{TargetAllegiance: skills.TargetPet}, false); got != 8 {
		t.Errorf("pet = %d, want 8", got)
	}
	if got := r.Resolve(f, skills.Skill{TargetAllegiance: skills.TargetSpirit}, false); got != 8 {
		t.Errorf("spirit = %d, want nearest spirit 8", got)
	}
}

func TestResolveClustered(t *testing.T) {
	ws := model.WorldState{
		InAggro: true,
		Self:    newSelf(),
		Agents: []model.Agent{
			enemy(10, 200, 0),
			enemy(11, 900, 0),
			enemy(12, 1000, 50),
			enemy(13, 950, -60),
		},
	}
	sk := skills.Skill{TargetAllegiance: skills.TargetEnemyClustered}
	got := NewResolver(TargetingSmart).Resolve(frameOf(ws), sk, false)
	if got != 11 {
		t.Errorf("Resolve = %d, want 11 at the center of the pack", got)
	}
}
