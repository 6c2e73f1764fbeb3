package ipc

// Sender is the write side of a Connection.
type Sender interface {
	Send(msgType string, data any) error
}

// CommandSink turns engine orders into command envelopes.
type CommandSink struct {
	out Sender
}

func NewCommandSink(out Sender) *CommandSink {
	return &CommandSink{out: out}
}

func (s *CommandSink) UseSkill(slot, target int) error {
	return s.out.Send(TypeUseSkill, UseSkillCommand{Slot: slot, TargetID: target})
}

func (s *CommandSink) Interact(target int) error {
	return s.out.Send(TypeInteract, InteractCommand{TargetID: target})
}

func (s *CommandSink) Move(x, y float64) error {
	return s.out.Send(TypeMove, MoveCommand{X: x, Y: y})
}

func (s *CommandSink) CancelMovement() error {
	return s.out.Send(TypeCancelMovement, CancelMovementCommand{})
}
