package model

// Allegiance is the relationship between an agent and the local player.
type Allegiance string

const (
	AllegianceAlly    Allegiance = "ally"
	AllegianceEnemy   Allegiance = "enemy"
	AllegianceNeutral Allegiance = "neutral"
	AllegianceSpirit  Allegiance = "spirit" // allied spirit or pet
	AllegianceMinion  Allegiance = "minion"
	AllegianceNPC     Allegiance = "npc"
)

// EffectKind classifies an effect an agent carries.
type EffectKind string

const (
	EffectHex         EffectKind = "hex"
	EffectEnchantment EffectKind = "enchantment"
	EffectWeaponSpell EffectKind = "weapon_spell"
	EffectChant       EffectKind = "chant"
	EffectOther       EffectKind = "other"
)

// WorldState is one snapshot pushed by the game client every tick.
type WorldState struct {
	Time    int64      `json:"time"` // client clock, milliseconds
	Ping    int64      `json:"ping"` // measured round trip, milliseconds
	InAggro bool       `json:"inAggro"`
	Self    Self       `json:"self"`
	Agents  []Agent    `json:"agents"`
	Party   PartyState `json:"party"`
}

// Agent is any living or dead entity visible to the client.
type Agent struct {
	ID         int        `json:"id"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Allegiance Allegiance `json:"allegiance"`
	Profession Profession `json:"profession"`
	InParty    bool       `json:"inParty"`
	Dead       bool       `json:"dead"`

	HP        float64 `json:"hp"` // fraction of MaxHP
	MaxHP     int     `json:"maxHp"`
	Energy    float64 `json:"energy"` // fraction of MaxEnergy
	MaxEnergy int     `json:"maxEnergy"`
	Overcast  float64 `json:"overcast"` // fraction of MaxEnergy locked by overcast

	IsCasting     bool `json:"isCasting"`
	CastingSkill  int  `json:"castingSkill"`
	IsAttacking   bool `json:"isAttacking"`
	IsMoving      bool `json:"isMoving"`
	IsKnockedDown bool `json:"isKnockedDown"`
	HoldingItem   bool `json:"holdingItem"`
	TargetID      int  `json:"targetId"` // what the agent is attacking or casting at

	WeaponType   WeaponType `json:"weaponType"`
	DaggerStatus int        `json:"daggerStatus"`
	SpawnSkill   int        `json:"spawnSkill"` // skill that created a spirit or minion

	Conditions Conditions `json:"conditions"`
	Effects    []Effect   `json:"effects"`
}

// Conditions are the common negative states.
type Conditions struct {
	Bleeding     bool `json:"bleeding"`
	Blind        bool `json:"blind"`
	Burning      bool `json:"burning"`
	CrackedArmor bool `json:"crackedArmor"`
	Crippled     bool `json:"crippled"`
	Dazed        bool `json:"dazed"`
	DeepWound    bool `json:"deepWound"`
	Disease      bool `json:"disease"`
	Poison       bool `json:"poison"`
	Weakness     bool `json:"weakness"`
}

// Any reports whether at least one condition is present.
func (c Conditions) Any() bool {
	return c.Bleeding || c.Blind || c.Burning || c.CrackedArmor || c.Crippled ||
		c.Dazed || c.DeepWound || c.Disease || c.Poison || c.Weakness
}

// Effect is a hex, enchantment or other skill-sourced effect on an agent.
type Effect struct {
	SkillID int        `json:"skillId"`
	Kind    EffectKind `json:"kind"`
	Degen   bool       `json:"degen,omitempty"`
	Dervish bool       `json:"dervish,omitempty"`
}

// Self is the local player: an agent plus the data only the owner can see.
type Self struct {
	Agent
	SkillBar       [8]SlotState `json:"skillbar"`
	Expertise      int          `json:"expertise"`
	WeaponRange    float64      `json:"weaponRange"`
	AttackInterval float64      `json:"attackInterval"` // seconds per swing
	PetID          int          `json:"petId"`
}

// SlotState is the live state of one skillbar slot.
type SlotState struct {
	SkillID    int   `json:"skillId"`
	Recharge   int64 `json:"recharge"` // milliseconds remaining
	Adrenaline int   `json:"adrenaline"`
	Disabled   bool  `json:"disabled"`
}

func (a Agent) Alive() bool { return !a.Dead }

func (a Agent) IsEnemy() bool { return a.Allegiance == AllegianceEnemy }

func (a Agent) IsAlly() bool { return a.Allegiance == AllegianceAlly }

// HasEffect reports whether the agent carries an effect from skillID.
func (a Agent) HasEffect(skillID int) bool {
	for _, e := range a.Effects {
		if e.SkillID == skillID {
			return true
		}
	}
	return false
}

// HasKind reports whether the agent carries any effect of kind k.
func (a Agent) HasKind(k EffectKind) bool {
	for _, e := range a.Effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// HasKindFrom reports whether the agent carries an effect of kind k whose
// skill is in ids. An empty list matches any effect of that kind.
func (a Agent) HasKindFrom(k EffectKind, ids []int) bool {
	if len(ids) == 0 {
		return a.HasKind(k)
	}
	for _, e := range a.Effects {
		if e.Kind != k {
			continue
		}
		for _, id := range ids {
			if e.SkillID == id {
				return true
			}
		}
	}
	return false
}

func (a Agent) IsHexed() bool { return a.HasKind(EffectHex) }

func (a Agent) IsEnchanted() bool { return a.HasKind(EffectEnchantment) }

// IsDegenHexed reports whether any hex on the agent causes health degeneration.
func (a Agent) IsDegenHexed() bool {
	for _, e := range a.Effects {
		if e.Kind == EffectHex && e.Degen {
			return true
		}
	}
	return false
}

// HasDervishEnchantment reports whether a Dervish flash enchantment is active.
func (a Agent) HasDervishEnchantment() bool {
	for _, e := range a.Effects {
		if e.Kind == EffectEnchantment && e.Dervish {
			return true
		}
	}
	return false
}

// CurrentEnergy is the absolute energy pool.
func (a Agent) CurrentEnergy() float64 {
	return a.Energy * float64(a.MaxEnergy)
}

// CurrentHP is the absolute health pool.
func (a Agent) CurrentHP() float64 {
	return a.HP * float64(a.MaxHP)
}

// Engaging reports whether the agent is attacking or casting at someone.
func (a Agent) Engaging() bool {
	return (a.IsAttacking || a.IsCasting) && a.TargetID != 0
}
