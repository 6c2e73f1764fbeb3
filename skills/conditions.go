package skills

// ConditionSet is the authored bag of cast predicates. Every predicate that is
// configured (a true flag, a non-zero threshold or count) must hold for the
// skill to fire; unconfigured predicates are ignored.
type ConditionSet struct {
	// Any of the common conditions satisfies HasCondition.
	HasCondition    bool `yaml:"has_condition"`
	HasBleeding     bool `yaml:"has_bleeding"`
	HasBlindness    bool `yaml:"has_blindness"`
	HasBurning      bool `yaml:"has_burning"`
	HasCrackedArmor bool `yaml:"has_cracked_armor"`
	HasCrippled     bool `yaml:"has_crippled"`
	HasDazed        bool `yaml:"has_dazed"`
	HasDeepWound    bool `yaml:"has_deep_wound"`
	HasDisease      bool `yaml:"has_disease"`
	HasPoison       bool `yaml:"has_poison"`
	HasWeakness     bool `yaml:"has_weakness"`

	// List-narrowed presence checks. An empty list means "any of that kind".
	HasWeaponSpell   bool  `yaml:"has_weapon_spell"`
	WeaponSpellList  []int `yaml:"weapon_spell_list"`
	HasEnchantment   bool  `yaml:"has_enchantment"`
	EnchantmentList  []int `yaml:"enchantment_list"`
	HasHex           bool  `yaml:"has_hex"`
	HexList          []int `yaml:"hex_list"`
	HasChant         bool  `yaml:"has_chant"`
	ChantList        []int `yaml:"chant_list"`
	IsCasting        bool  `yaml:"is_casting"`
	CastingSkillList []int `yaml:"casting_skill_list"`

	HasDervishEnchantment bool `yaml:"has_dervish_enchantment"`
	IsKnockedDown         bool `yaml:"is_knocked_down"`
	IsMoving              bool `yaml:"is_moving"`
	IsAttacking           bool `yaml:"is_attacking"`
	IsHoldingItem         bool `yaml:"is_holding_item"`

	LessLife   float64 `yaml:"less_life"`
	MoreLife   float64 `yaml:"more_life"`
	LessEnergy float64 `yaml:"less_energy"`
	Overcast   float64 `yaml:"overcast"`

	IsPartyWide   bool    `yaml:"is_party_wide"`
	PartyWideArea float64 `yaml:"party_wide_area"`

	IsOutOfCombat bool `yaml:"is_out_of_combat"`
	IsInAggro     bool `yaml:"is_in_aggro"`

	EnemiesInRange     int     `yaml:"enemies_in_range"`
	EnemiesInRangeArea float64 `yaml:"enemies_in_range_area"`
	AlliesInRange      int     `yaml:"allies_in_range"`
	AlliesInRangeArea  float64 `yaml:"allies_in_range_area"`
	SpiritsInRange     int     `yaml:"spirits_in_range"`
	SpiritsInRangeArea float64 `yaml:"spirits_in_range_area"`
	MinionsInRange     int     `yaml:"minions_in_range"`
	MinionsInRangeArea float64 `yaml:"minions_in_range_area"`

	// Script is an expr boolean evaluated against the target; it counts as
	// one predicate.
	Script string `yaml:"script"`

	// UniqueProperty routes the skill to its hand-written rule and skips the
	// generic predicates entirely.
	UniqueProperty bool `yaml:"unique_property"`

	// TargetingStrict disables the best-enemy fallback when the allegiance
	// specific query finds nothing.
	TargetingStrict bool `yaml:"targeting_strict"`

	// OutOfCombat allows the skill to fire while the agent is not engaged.
	OutOfCombat bool `yaml:"out_of_combat"`
}

// FiresOutOfCombat reports whether the skill may be used while the agent is
// not engaged. A skill whose predicate requires being out of combat is
// implicitly allowed.
func (c ConditionSet) FiresOutOfCombat() bool {
	return c.OutOfCombat || c.IsOutOfCombat
}
