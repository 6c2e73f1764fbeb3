package ipc

// Command types the client plugin executes. Commands are fire-and-forget;
// the client never replies to them.
const (
	TypeUseSkill       = "use_skill"
	TypeInteract       = "interact"
	TypeMove           = "move"
	TypeCancelMovement = "cancel_movement"
)

// UseSkillCommand casts the skill in Slot (0-based) on TargetID.
type UseSkillCommand struct {
	Slot     int `json:"slot"`
	TargetID int `json:"targetId"`
}

// InteractCommand is the generic "act on agent" order: attack an enemy, talk
// to an NPC, follow an ally.
type InteractCommand struct {
	TargetID int `json:"targetId"`
}

type MoveCommand struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CancelMovementCommand struct{}
