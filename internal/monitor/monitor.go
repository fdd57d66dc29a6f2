package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tornsuite/consigliere/internal/torn"
)

// Options configures the monitor's tick intervals and fetch selections.
type Options struct {
	MonitorFields   string
	CompanyFields   string
	MonitorInterval time.Duration
	CompanyInterval time.Duration
}

// DefaultOptions returns production defaults.
func DefaultOptions() Options {
	return Options{
		MonitorFields:   "basic,bars,cooldowns,travel,education,events,messages",
		CompanyFields:   "profile,stock,employees",
		MonitorInterval: 60 * time.Second,
		CompanyInterval: 5 * time.Minute,
	}
}

// Status is a point-in-time view of the monitor for the HTTP surface.
type Status struct {
	LastTick       time.Time `json:"last_tick"`
	LastCompany    time.Time `json:"last_company_tick"`
	TickCount      int64     `json:"tick_count"`
	Dispatched     int64     `json:"notifications_dispatched"`
	Failed         int64     `json:"notifications_failed"`
	CompanyEnabled bool      `json:"company_enabled"`
}

// Monitor owns the transition state and drives both tick families.
type Monitor struct {
	fetcher    Fetcher
	store      StateStore
	dispatcher *Dispatcher
	opts       Options
	logger     *slog.Logger

	events Feed
	inbox  Feed

	// transitions is only touched from the fast-tick goroutine.
	transitions TransitionState

	mu     sync.Mutex
	status Status
}

// New creates a Monitor wired to its three collaborators.
func New(fetcher Fetcher, store StateStore, sender Sender, opts Options, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		fetcher:    fetcher,
		store:      store,
		dispatcher: NewDispatcher(sender, logger),
		opts:       opts,
		logger:     logger,
		events:     EventFeed(),
		inbox:      InboxFeed(),
	}
}

// InitWatermarks performs the one-time first-boot catch-up: any watermark
// still at the unset sentinel is moved to the newest currently-visible
// record so history is never replayed as notifications. Run before the
// scheduler starts. A fetch failure here is logged and tolerated — the
// watermark simply initializes on a later attempt.
func (m *Monitor) InitWatermarks(ctx context.Context) {
	doc, err := m.fetcher.FetchUser(ctx, "events,messages")
	if err != nil {
		m.logger.Error("watermark initialization fetch failed", "error", err)
		return
	}
	snap := torn.ParseSnapshot(doc)

	m.initWatermark(m.events.StateKey, EventRecords(snap.Events))
	m.initWatermark(m.inbox.StateKey, MessageRecords(snap.Messages))
}

func (m *Monitor) initWatermark(key string, records []Record) {
	if current := m.store.GetInt64(key, 0); current != 0 {
		m.logger.Info("resuming feed tracking", "key", key, "watermark", current)
		return
	}
	newest := NewestTimestamp(records)
	if newest == 0 {
		return
	}
	if err := m.store.SetInt64(key, newest); err != nil {
		m.logger.Error("failed to initialize watermark", "key", key, "error", err)
		return
	}
	m.logger.Info("initialized feed watermark", "key", key, "watermark", newest)
}

// Start runs both tick families until ctx is cancelled. Blocks; intended to
// be called with `go`. Each family is a single ticker loop running its tick
// body inline, so a family never overlaps itself; the two families run
// independently and may overlap each other.
func (m *Monitor) Start(ctx context.Context) {
	m.logger.Info("monitor started",
		"interval", m.opts.MonitorInterval,
		"company_interval", m.opts.CompanyInterval)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(m.opts.MonitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.RunTick(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(m.opts.CompanyInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.RunCompanyTick(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	m.logger.Info("monitor stopped")
}

// RunTick executes one fast tick: fetch → detect → classify both feeds →
// dispatch. A fetch failure skips the tick entirely — no state mutation, no
// notifications — and the next scheduled tick retries naturally.
func (m *Monitor) RunTick(ctx context.Context) {
	doc, err := m.fetcher.FetchUser(ctx, m.opts.MonitorFields)
	if err != nil {
		m.logger.Error("monitor fetch failed, skipping tick", "error", err)
		return
	}
	snap := torn.ParseSnapshot(doc)

	records := Detect(snap, &m.transitions)
	records = append(records, m.processFeed(m.events, EventRecords(snap.Events))...)
	records = append(records, m.processFeed(m.inbox, MessageRecords(snap.Messages))...)

	sent, failed := m.dispatcher.Dispatch(ctx, records)
	if sent+failed > 0 {
		m.logger.Info("tick dispatched", "sent", sent, "failed", failed)
	}

	m.mu.Lock()
	m.status.LastTick = time.Now()
	m.status.TickCount++
	m.status.Dispatched += int64(sent)
	m.status.Failed += int64(failed)
	m.mu.Unlock()
}

// processFeed runs one feed against its persisted watermark and advances the
// watermark atomically for the whole batch.
func (m *Monitor) processFeed(feed Feed, records []Record) []Notification {
	watermark := m.store.GetInt64(feed.StateKey, 0)
	out, newWatermark := feed.Process(records, watermark)
	if newWatermark > watermark {
		if err := m.store.SetInt64(feed.StateKey, newWatermark); err != nil {
			m.logger.Error("failed to persist watermark", "key", feed.StateKey, "error", err)
		} else {
			m.logger.Info("advanced watermark", "key", feed.StateKey, "watermark", newWatermark)
		}
	}
	return out
}

// RunCompanyTick executes one slow tick: company fetch → health check →
// dispatch. A permission failure disables the checker persistently until it
// is manually re-enabled; transient failures skip the tick.
func (m *Monitor) RunCompanyTick(ctx context.Context) {
	if !m.store.GetBool(KeyCompanyEnabled, true) {
		return
	}

	doc, err := m.fetcher.FetchCompany(ctx, m.opts.CompanyFields)
	if err != nil {
		if torn.IsPermission(err) {
			if setErr := m.store.SetBool(KeyCompanyEnabled, false); setErr != nil {
				m.logger.Error("failed to persist company disable", "error", setErr)
			}
			m.logger.Warn("company checks disabled on permission failure", "error", err)
			m.dispatcher.Dispatch(ctx, []Notification{companyDisabledNotice()})
			return
		}
		m.logger.Error("company fetch failed, skipping tick", "error", err)
		return
	}

	records := CheckCompany(torn.ParseCompany(doc), time.Now())
	sent, failed := m.dispatcher.Dispatch(ctx, records)
	if sent+failed > 0 {
		m.logger.Info("company tick dispatched", "sent", sent, "failed", failed)
	}

	m.mu.Lock()
	m.status.LastCompany = time.Now()
	m.status.Dispatched += int64(sent)
	m.status.Failed += int64(failed)
	m.mu.Unlock()
}

// Status returns a copy of the monitor's counters for the HTTP surface.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	s := m.status
	m.mu.Unlock()
	s.CompanyEnabled = m.store.GetBool(KeyCompanyEnabled, true)
	return s
}
