// Package partyfeed keeps the shared party state in sync with the other bot
// processes through a websocket relay.
package partyfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nstehr/vanguard/vanguard-core/model"
)

// Message types on the relay.
const (
	TypePartyState  = "party_state"
	TypeMemberState = "member_state"
)

const (
	minBackoff   = time.Second
	maxBackoff   = 30 * time.Second
	writeTimeout = 5 * time.Second
)

type message struct {
	Type   string             `json:"type"`
	Party  *model.PartyState  `json:"party,omitempty"`
	Member *model.PartyMember `json:"member,omitempty"`
}

// Feed holds the latest party state received from the relay. Reads are safe
// from any goroutine; the zero state means "no data" and leaves every toggle
// enabled.
type Feed struct {
	url    string
	dialer *websocket.Dialer
	log    *slog.Logger

	mu      sync.RWMutex
	state   model.PartyState
	updated time.Time

	connMu sync.Mutex
	conn   *websocket.Conn
}

func New(url string, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		url:    url,
		dialer: websocket.DefaultDialer,
		log:    logger.With("component", "partyfeed"),
	}
}

// Run connects to the relay and keeps reconnecting with backoff until ctx is
// done.
func (f *Feed) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		err := f.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.log.Warn("party feed disconnected", "url", f.url, "error", err, "retryIn", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (f *Feed) session(ctx context.Context) error {
	conn, resp, err := f.dialer.DialContext(ctx, f.url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial party feed: %w", err)
	}
	f.setConn(conn)
	defer f.setConn(nil)
	f.log.Info("party feed connected", "url", f.url)

	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeTimeout))
		conn.Close()
	})
	defer stop()
	defer conn.Close()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read party feed: %w", err)
		}
		if err := f.Apply(payload); err != nil {
			f.log.Warn("discarding malformed party message", "error", err)
		}
	}
}

func (f *Feed) setConn(c *websocket.Conn) {
	f.connMu.Lock()
	f.conn = c
	f.connMu.Unlock()
}

// Apply decodes one relay message and stores it when it carries party state.
func (f *Feed) Apply(payload []byte) error {
	var msg message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("unmarshal party message: %w", err)
	}
	if msg.Type != TypePartyState {
		return nil
	}
	if msg.Party == nil {
		return errors.New("party_state without party")
	}
	f.mu.Lock()
	f.state = *msg.Party
	f.updated = time.Now()
	f.mu.Unlock()
	return nil
}

// ErrNotConnected is returned by Publish while the relay is unreachable.
var ErrNotConnected = errors.New("party feed not connected")

// Publish shares this process's member state with the rest of the party.
func (f *Feed) Publish(m model.PartyMember) error {
	f.connMu.Lock()
	defer f.connMu.Unlock()
	if f.conn == nil {
		return ErrNotConnected
	}
	data, err := json.Marshal(message{Type: TypeMemberState, Member: &m})
	if err != nil {
		return fmt.Errorf("marshal member state: %w", err)
	}
	f.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := f.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write member state: %w", err)
	}
	return nil
}

// Snapshot returns the latest party state and when it arrived. The time is
// zero if nothing was received yet.
func (f *Feed) Snapshot() (model.PartyState, time.Time) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state, f.updated
}

func (f *Feed) current() model.PartyState {
	s, _ := f.Snapshot()
	return s
}

func (f *Feed) LeaderID() int { return f.current().LeaderID() }

func (f *Feed) CalledTarget() int { return f.current().CalledTarget() }

func (f *Feed) Members() []model.PartyMember { return f.current().Members() }

func (f *Feed) CombatEnabled() bool { return f.current().CombatEnabled() }

func (f *Feed) TargetingEnabled() bool { return f.current().TargetingEnabled() }

func (f *Feed) SkillEnabled(slot int) bool { return f.current().SkillEnabled(slot) }
