package model

// Profession is an agent's primary profession.
type Profession string

const (
	ProfessionNone         Profession = ""
	ProfessionWarrior      Profession = "warrior"
	ProfessionRanger       Profession = "ranger"
	ProfessionMonk         Profession = "monk"
	ProfessionNecromancer  Profession = "necromancer"
	ProfessionMesmer       Profession = "mesmer"
	ProfessionElementalist Profession = "elementalist"
	ProfessionAssassin     Profession = "assassin"
	ProfessionRitualist    Profession = "ritualist"
	ProfessionParagon      Profession = "paragon"
	ProfessionDervish      Profession = "dervish"
)

// WeaponType is the equipped weapon class.
type WeaponType string

const (
	WeaponNone    WeaponType = ""
	WeaponBow     WeaponType = "bow"
	WeaponAxe     WeaponType = "axe"
	WeaponHammer  WeaponType = "hammer"
	WeaponDaggers WeaponType = "daggers"
	WeaponScythe  WeaponType = "scythe"
	WeaponSpear   WeaponType = "spear"
	WeaponSword   WeaponType = "sword"
	WeaponWand    WeaponType = "wand"
	WeaponStaff   WeaponType = "staff"
)

// IsCaster reports whether the profession fights primarily with spells.
func (p Profession) IsCaster() bool {
	switch p {
	case ProfessionMonk, ProfessionNecromancer, ProfessionMesmer,
		ProfessionElementalist, ProfessionRitualist:
		return true
	}
	return false
}

// IsMartial reports whether the profession fights primarily with weapons.
func (p Profession) IsMartial() bool {
	switch p {
	case ProfessionWarrior, ProfessionRanger, ProfessionAssassin,
		ProfessionParagon, ProfessionDervish:
		return true
	}
	return false
}

// IsMelee reports whether the weapon is used at close range.
func (w WeaponType) IsMelee() bool {
	switch w {
	case WeaponAxe, WeaponHammer, WeaponDaggers, WeaponScythe, WeaponSword:
		return true
	}
	return false
}

// IsRanged reports whether the weapon fires projectiles.
func (w WeaponType) IsRanged() bool {
	switch w {
	case WeaponBow, WeaponSpear, WeaponWand, WeaponStaff:
		return true
	}
	return false
}

// IsMartialMelee classifies an agent as a close-range weapon user. The
// weapon decides when known; otherwise the profession does.
func (a Agent) IsMartialMelee() bool {
	if !a.Profession.IsMartial() {
		return false
	}
	if a.WeaponType != WeaponNone {
		return a.WeaponType.IsMelee()
	}
	switch a.Profession {
	case ProfessionWarrior, ProfessionAssassin, ProfessionDervish:
		return true
	}
	return false
}

// IsMartialRanged classifies an agent as a ranged weapon user.
func (a Agent) IsMartialRanged() bool {
	if !a.Profession.IsMartial() {
		return false
	}
	if a.WeaponType != WeaponNone {
		return a.WeaponType.IsRanged()
	}
	switch a.Profession {
	case ProfessionRanger, ProfessionParagon:
		return true
	}
	return false
}
