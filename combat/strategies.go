package combat

import (
	"github.com/nstehr/vanguard/vanguard-core/model"
)

// Smart scoring weights.
const (
	smartInjuryWeight   = 50.0
	smartHealerBonus    = 100.0
	smartCasterBonus    = 60.0
	smartDistanceWeight = 0.01
	smartNearLeader     = 1000.0
	smartNearParty      = 500.0
	smartCurrentTarget  = 40.0
	smartLeaderTarget   = 2000.0
	smartOutOfReachCost = 5000.0
)

func professionBonus(p model.Profession) float64 {
	switch p {
	case model.ProfessionMonk, model.ProfessionRitualist:
		return smartHealerBonus
	case model.ProfessionElementalist, model.ProfessionNecromancer, model.ProfessionMesmer:
		return smartCasterBonus
	}
	return 0
}

// SmartScore rates one enemy for the smart strategy. Higher is better.
func SmartScore(f Frame, a model.Agent) float64 {
	self := f.World.Self()
	dist := self.DistanceTo(a)
	leaderTarget := declaredTarget(f)

	score := (1-a.HP)*smartInjuryWeight + professionBonus(a.Profession) - dist*smartDistanceWeight

	leaderID := 0
	if f.Party != nil {
		leaderID = f.Party.LeaderID()
	}
	nearOther := false
	for _, p := range partyPositions(f) {
		if model.Distance(p.x, p.y, a.X, a.Y) > supportRadius {
			continue
		}
		if p.id == leaderID {
			score += smartNearLeader
		} else if p.id != self.ID {
			nearOther = true
		}
	}
	if nearOther {
		score += smartNearParty
	}

	if a.ID == self.TargetID {
		score += smartCurrentTarget
	}
	if a.ID == leaderTarget {
		score += smartLeaderTarget
	} else if dist > combatDistance {
		score -= smartOutOfReachCost
	}
	return score
}

// smart scans living enemies and returns the best scored one that passes the
// defensive filter. Ties keep the first agent in scan order.
func (r *Resolver) smart(f Frame) int {
	self := f.World.Self()
	radius := model.RangeEarshot
	if f.World.InAggro() {
		radius = smartScanDistance
	}

	best, bestScore, found := 0, 0.0, false
	for _, a := range f.World.Agents() {
		if !a.IsEnemy() || a.Dead || self.DistanceTo(a) > radius {
			continue
		}
		if !ValidDefensiveTarget(f, a.ID) {
			continue
		}
		s := SmartScore(f, a)
		if !found || s > bestScore {
			best, bestScore, found = a.ID, s, true
		}
	}
	return best
}

// assist follows the leader's declared target, else the enemy the most party
// members are engaging. Ties go to the lower agent id. With nobody engaged it
// falls back to smart scoring.
func (r *Resolver) assist(f Frame) int {
	if id := declaredTarget(f); id != 0 {
		return id
	}

	self := f.World.Self()
	tally := make(map[int]int)
	for _, m := range engagedMembers(f) {
		if m.id == self.ID {
			continue
		}
		a, ok := f.World.Agent(m.target)
		if !ok || !a.IsEnemy() || a.Dead {
			continue
		}
		if !ValidDefensiveTarget(f, a.ID) {
			continue
		}
		tally[a.ID]++
	}

	best, bestCount := 0, 0
	for id, n := range tally {
		if n > bestCount || (n == bestCount && id < best) {
			best, bestCount = id, n
		}
	}
	if best != 0 {
		return best
	}
	return r.smart(f)
}

// ValidDefensiveTarget reports whether the party may legitimately attack id:
// it is within earshot, or within compass range and attacking the party, or
// some party member is already engaging it.
func ValidDefensiveTarget(f Frame, id int) bool {
	a, ok := f.World.Agent(id)
	if !ok {
		return false
	}
	self := f.World.Self()
	dist := self.DistanceTo(a)
	if dist <= model.RangeEarshot {
		return true
	}

	members := partyIDs(f)
	if dist <= model.RangeCompass && a.Engaging() && members[a.TargetID] {
		return true
	}

	for _, m := range engagedMembers(f) {
		if m.target == id {
			return true
		}
	}
	return false
}

type memberPos struct {
	id   int
	x, y float64
}

// partyPositions merges party members seen directly with those published in
// shared state. Direct observation wins when both exist.
func partyPositions(f Frame) []memberPos {
	self := f.World.Self()
	seen := map[int]bool{self.ID: true}
	out := []memberPos{{id: self.ID, x: self.X, y: self.Y}}
	for _, a := range f.World.Agents() {
		if !a.InParty || a.Dead || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, memberPos{id: a.ID, x: a.X, y: a.Y})
	}
	if f.Party == nil {
		return out
	}
	for _, m := range f.Party.Members() {
		if m.AgentID == 0 || seen[m.AgentID] {
			continue
		}
		seen[m.AgentID] = true
		out = append(out, memberPos{id: m.AgentID, x: m.X, y: m.Y})
	}
	return out
}

func partyIDs(f Frame) map[int]bool {
	ids := make(map[int]bool)
	for _, p := range partyPositions(f) {
		ids[p.id] = true
	}
	return ids
}

type engagement struct {
	id     int
	target int
}

// engagedMembers lists who in the party is attacking or casting at what,
// combining direct observation with shared state. A member reported by both
// counts once.
func engagedMembers(f Frame) []engagement {
	self := f.World.Self()
	var out []engagement
	seen := make(map[int]bool)
	if self.Engaging() {
		out = append(out, engagement{id: self.ID, target: self.TargetID})
		seen[self.ID] = true
	}
	for _, a := range f.World.Agents() {
		if !a.InParty || a.Dead || !a.Engaging() || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, engagement{id: a.ID, target: a.TargetID})
	}
	if f.Party == nil {
		return out
	}
	for _, m := range f.Party.Members() {
		if m.AgentID == 0 || !m.Engaging() || seen[m.AgentID] {
			continue
		}
		seen[m.AgentID] = true
		out = append(out, engagement{id: m.AgentID, target: m.TargetID})
	}
	return out
}
