package agent

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nstehr/vanguard/vanguard-core/model"
	"github.com/nstehr/vanguard/vanguard-core/partyfeed"
)

// MemberPublisher shares this process's member state with the party.
type MemberPublisher interface {
	Publish(m model.PartyMember) error
}

// Publisher runs in the background and forwards the latest member state to
// the party relay, at most once per interval of client time and immediately
// when the engaged target changes.
type Publisher struct {
	mu       sync.Mutex
	latest   *model.PartyMember
	sent     model.PartyMember
	out      MemberPublisher
	interval int64 // milliseconds
	lastSent int64
	now      int64
	ready    chan struct{}
	log      *slog.Logger
}

func NewPublisher(out MemberPublisher, interval int64, logger *slog.Logger) *Publisher {
	if interval <= 0 {
		interval = 250
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		out:      out,
		interval: interval,
		ready:    make(chan struct{}, 1),
		log:      logger,
	}
}

// UpdateState stores the latest member state. Signals readiness on the first
// call, on interval boundaries and whenever the engagement changes.
func (p *Publisher) UpdateState(now int64, m model.PartyMember) {
	p.mu.Lock()
	first := p.latest == nil
	p.latest = &m
	p.now = now
	changed := m.TargetID != p.sent.TargetID || m.Engaging() != p.sent.Engaging() || m.CastingSkill != p.sent.CastingSkill
	shouldSignal := first || changed || now-p.lastSent >= p.interval
	p.mu.Unlock()

	if shouldSignal {
		select {
		case p.ready <- struct{}{}:
		default:
		}
	}
}

// Start launches the publish loop. It blocks until ctx is cancelled.
func (p *Publisher) Start(ctx context.Context) {
	p.log.Debug("member publisher started", "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			p.log.Debug("member publisher stopped")
			return
		case <-p.ready:
			p.publish()
		}
	}
}

func (p *Publisher) publish() {
	p.mu.Lock()
	m := p.latest
	now := p.now
	p.mu.Unlock()

	if m == nil {
		return
	}
	if err := p.out.Publish(*m); err != nil {
		if !errors.Is(err, partyfeed.ErrNotConnected) {
			p.log.Warn("member publish failed", "error", err)
		}
		return
	}

	p.mu.Lock()
	p.sent = *m
	p.lastSent = now
	p.mu.Unlock()
}
