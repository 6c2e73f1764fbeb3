package ipc

// Message types exchanged with the game client plugin.
const (
	TypeHello      = "hello"
	TypeAck        = "ack"
	TypeWorldState = "world_state"
)

// HelloMessage identifies the character driven over this connection.
type HelloMessage struct {
	Player  string `json:"player"`
	Account string `json:"account,omitempty"`
	AgentID int    `json:"agentId"`
}

type AckMessage struct {
	Status string `json:"status"`
}
