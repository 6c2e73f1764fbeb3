package model

// Snapshot indexes a WorldState for point reads during a tick.
type Snapshot struct {
	state WorldState
	index map[int]int
}

// NewSnapshot indexes ws. Clients that echo the local player inside Agents
// have that entry dropped; Self is authoritative.
func NewSnapshot(ws WorldState) *Snapshot {
	agents := make([]Agent, 0, len(ws.Agents))
	idx := make(map[int]int, len(ws.Agents))
	for _, a := range ws.Agents {
		if a.ID == ws.Self.ID && ws.Self.ID != 0 {
			continue
		}
		idx[a.ID] = len(agents)
		agents = append(agents, a)
	}
	ws.Agents = agents
	return &Snapshot{state: ws, index: idx}
}

func (s *Snapshot) Now() int64 { return s.state.Time }

func (s *Snapshot) Latency() int64 { return s.state.Ping }

func (s *Snapshot) InAggro() bool { return s.state.InAggro }

func (s *Snapshot) Self() Self { return s.state.Self }

// Agent looks up id, including the local player. Unknown ids and 0 report
// false.
func (s *Snapshot) Agent(id int) (Agent, bool) {
	if id == 0 {
		return Agent{}, false
	}
	if id == s.state.Self.ID {
		return s.state.Self.Agent, true
	}
	i, ok := s.index[id]
	if !ok {
		return Agent{}, false
	}
	return s.state.Agents[i], true
}

// Agents returns every visible agent except the local player.
func (s *Snapshot) Agents() []Agent { return s.state.Agents }

// Party returns the party state embedded in the snapshot.
func (s *Snapshot) Party() PartyState { return s.state.Party }
