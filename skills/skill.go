package skills

// Nature is the authored behavioral category of a skill. It drives the first
// priority pass and a few targeting special cases.
type Nature string

const (
	NatureNone               Nature = ""
	NatureInterrupt          Nature = "interrupt"
	NatureEnchantmentRemoval Nature = "enchantment_removal"
	NatureHealing            Nature = "healing"
	NatureResurrection       Nature = "resurrection"
	NatureHexRemoval         Nature = "hex_removal"
	NatureConditionCleanse   Nature = "condition_cleanse"
	NatureSelfTargeted       Nature = "self_targeted"
	NatureEnergyBuff         Nature = "energy_buff"
	NatureBuff               Nature = "buff"
	NatureOffensive          Nature = "offensive"
	NatureOffensiveSecondary Nature = "offensive_secondary"
	NatureOffensiveTertiary  Nature = "offensive_tertiary"
)

// NatureTiers lists the canonical nature buckets in priority order.
var NatureTiers = []Nature{
	NatureInterrupt,
	NatureEnchantmentRemoval,
	NatureHealing,
	NatureResurrection,
	NatureHexRemoval,
	NatureConditionCleanse,
	NatureSelfTargeted,
	NatureEnergyBuff,
	NatureBuff,
	NatureOffensive,
	NatureOffensiveSecondary,
	NatureOffensiveTertiary,
}

// Type is the mechanical skill type as reported by the game.
type Type string

const (
	TypeNone        Type = ""
	TypeForm        Type = "form"
	TypeEnchantment Type = "enchantment"
	TypeEchoRefrain Type = "echo_refrain"
	TypeWeaponSpell Type = "weapon_spell"
	TypeChant       Type = "chant"
	TypePreparation Type = "preparation"
	TypeRitual      Type = "ritual"
	TypeWard        Type = "ward"
	TypeWell        Type = "well"
	TypeStance      Type = "stance"
	TypeShout       Type = "shout"
	TypeGlyph       Type = "glyph"
	TypeSignet      Type = "signet"
	TypeHex         Type = "hex"
	TypeTrap        Type = "trap"
	TypeSpell       Type = "spell"
	TypeSkill       Type = "skill"
	TypePetAttack   Type = "pet_attack"
	TypeAttack      Type = "attack"
)

// TypeTiers lists the mechanical type buckets in priority order.
var TypeTiers = []Type{
	TypeForm,
	TypeEnchantment,
	TypeEchoRefrain,
	TypeWeaponSpell,
	TypeChant,
	TypePreparation,
	TypeRitual,
	TypeWard,
	TypeWell,
	TypeStance,
	TypeShout,
	TypeGlyph,
	TypeSignet,
	TypeHex,
	TypeTrap,
	TypeSpell,
	TypeSkill,
	TypePetAttack,
	TypeAttack,
}

// Combo is the position of a skill in a dagger chain. The numeric values
// match the dagger status the game reports after each step.
type Combo int

const (
	ComboNone       Combo = 0
	ComboLeadAttack Combo = 1
	ComboOffHand    Combo = 2
	ComboDualAttack Combo = 3
)

// ComboTiers lists the combo buckets in priority order.
var ComboTiers = []Combo{ComboDualAttack, ComboOffHand, ComboLeadAttack}

// TargetAllegiance tells the resolver which kind of agent a skill wants.
type TargetAllegiance string

const (
	TargetUnknown            TargetAllegiance = ""
	TargetEnemy              TargetAllegiance = "enemy"
	TargetEnemyCaster        TargetAllegiance = "enemy_caster"
	TargetEnemyMartial       TargetAllegiance = "enemy_martial"
	TargetEnemyMartialMelee  TargetAllegiance = "enemy_martial_melee"
	TargetEnemyMartialRanged TargetAllegiance = "enemy_martial_ranged"
	TargetEnemyClustered     TargetAllegiance = "enemy_clustered"
	TargetEnemyAttacking     TargetAllegiance = "enemy_attacking"
	TargetEnemyCasting       TargetAllegiance = "enemy_casting"
	TargetEnemyInjured       TargetAllegiance = "enemy_injured"
	TargetEnemyConditioned   TargetAllegiance = "enemy_conditioned"
	TargetEnemyHexed         TargetAllegiance = "enemy_hexed"
	TargetEnemyBleeding      TargetAllegiance = "enemy_bleeding"
	TargetEnemyPoisoned      TargetAllegiance = "enemy_poisoned"
	TargetEnemyCrippled      TargetAllegiance = "enemy_crippled"
	TargetEnemyKnockedDown   TargetAllegiance = "enemy_knocked_down"
	TargetEnemyDegenHexed    TargetAllegiance = "enemy_degen_hexed"
	TargetEnemyEnchanted     TargetAllegiance = "enemy_enchanted"
	TargetEnemyMoving        TargetAllegiance = "enemy_moving"

	TargetAlly              TargetAllegiance = "ally"
	TargetAllyCaster        TargetAllegiance = "ally_caster"
	TargetAllyMartial       TargetAllegiance = "ally_martial"
	TargetAllyMartialMelee  TargetAllegiance = "ally_martial_melee"
	TargetAllyMartialRanged TargetAllegiance = "ally_martial_ranged"
	TargetOtherAlly         TargetAllegiance = "other_ally"

	TargetSelf     TargetAllegiance = "self"
	TargetPet      TargetAllegiance = "pet"
	TargetDeadAlly TargetAllegiance = "dead_ally"
	TargetSpirit   TargetAllegiance = "spirit"
	TargetMinion   TargetAllegiance = "minion"
	TargetCorpse   TargetAllegiance = "corpse"
)

// Static holds the game-side properties of a skill.
type Static struct {
	EnergyCost     int     `yaml:"energy_cost"`
	AdrenalineCost int     `yaml:"adrenaline_cost"`
	HealthCost     float64 `yaml:"health_cost"` // fraction of max health
	Overcast       int     `yaml:"overcast"`
	Recharge       float64 `yaml:"recharge"`   // seconds
	Activation     float64 `yaml:"activation"` // seconds
	Aftercast      float64 `yaml:"aftercast"`  // seconds
	Range          float64 `yaml:"range"`      // 0 means weapon range
	Combo          Combo   `yaml:"combo"`
	Type           Type    `yaml:"type"`
	Profession     string  `yaml:"profession"`
	// Expertise reduces the cost of attacks, rituals, touch skills and
	// Ranger skills.
	ExpertiseEligible bool `yaml:"expertise_eligible"`
}

// IsAttack reports whether the skill swings the weapon, which adds the
// weapon's attack interval to the aftercast.
func (s Static) IsAttack() bool {
	return s.Type == TypeAttack
}

// Skill is one catalog entry: game data plus authored behavior.
type Skill struct {
	ID               int              `yaml:"id"`
	Name             string           `yaml:"name"`
	Static           Static           `yaml:"static"`
	Nature           Nature           `yaml:"nature"`
	AuthoredType     Type             `yaml:"type"`
	TargetAllegiance TargetAllegiance `yaml:"target"`
	Conditions       ConditionSet     `yaml:"conditions"`
}

// Type is the authored type when present, else the game type.
func (s Skill) Type() Type {
	if s.AuthoredType != TypeNone {
		return s.AuthoredType
	}
	return s.Static.Type
}

// Empty reports whether the skill is the "no skill" placeholder.
func (s Skill) Empty() bool { return s.ID == 0 }
