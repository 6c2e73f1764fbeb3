package model

// PartyState is the cross-process view of the party: what every member is
// doing, who leads, and the per-account toggles. Zero values mean "no data"
// and "enabled" so a missing structure never blocks the engine.
type PartyState struct {
	Leader            int           `json:"leader"`
	Called            int           `json:"calledTarget"`
	Roster            []PartyMember `json:"members"`
	CombatDisabled    bool          `json:"combatDisabled"`
	TargetingDisabled bool          `json:"targetingDisabled"`
	SkillsDisabled    [8]bool       `json:"skillsDisabled"`
}

// PartyMember is the shared state one process publishes about its agent.
type PartyMember struct {
	AgentID      int     `json:"agentId"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	TargetID     int     `json:"targetId"`
	Attacking    bool    `json:"attacking"`
	Casting      bool    `json:"casting"`
	CastingSkill int     `json:"castingSkill"`
}

// Engaging reports whether the member is attacking or casting at TargetID.
func (m PartyMember) Engaging() bool {
	return (m.Attacking || m.Casting) && m.TargetID != 0
}

func (p PartyState) LeaderID() int { return p.Leader }

func (p PartyState) CalledTarget() int { return p.Called }

func (p PartyState) Members() []PartyMember { return p.Roster }

func (p PartyState) CombatEnabled() bool { return !p.CombatDisabled }

func (p PartyState) TargetingEnabled() bool { return !p.TargetingDisabled }

// SkillEnabled reports whether the slot may be used. Out-of-range slots are
// disabled.
func (p PartyState) SkillEnabled(slot int) bool {
	if slot < 0 || slot >= len(p.SkillsDisabled) {
		return false
	}
	return !p.SkillsDisabled[slot]
}
