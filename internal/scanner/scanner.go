package scanner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/khushi-labs/marketwallet/internal/ens"
)

// State of the scan modal.
type State int

const (
	StateClosed State = iota
	StateScanning
	StateResult
)

// ResultUnavailable is rendered when the owner has no resolvable name.
const ResultUnavailable = "Not available"

const (
	statusScanning = "Scanning item..."
	statusComplete = "Scan complete"
)

// View is the modal surface: the container, its status-text region, and its
// result panel, each shown and hidden independently.
type View interface {
	ShowModal()
	HideModal()
	SetStatusText(text string)
	ShowResult(owner, name string)
	HideResult()
}

// Clock schedules a callback after a delay. Injectable so tests advance
// virtual time instead of sleeping out the scan delay.
type Clock interface {
	AfterFunc(d time.Duration, fn func())
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// RealClock returns a Clock backed by the runtime timer.
func RealClock() Clock { return realClock{} }

// Scanner drives the scan modal through its timed pseudo-asynchronous
// sequence: open immediately, then resolve the owner's name after a fixed
// delay and render the result panel.
type Scanner struct {
	view     View
	resolver ens.Resolver
	clock    Clock
	delay    time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

func New(view View, resolver ens.Resolver, clock Clock, delay time.Duration) *Scanner {
	if clock == nil {
		clock = RealClock()
	}
	if delay <= 0 {
		delay = 900 * time.Millisecond
	}
	return &Scanner{
		view:     view,
		resolver: resolver,
		clock:    clock,
		delay:    delay,
		logger:   slog.Default().With("component", "scanner"),
	}
}

// State returns the modal's current state.
func (s *Scanner) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Open starts a scan for ownerAddress: the modal shows immediately with a
// scanning status, and the result renders after the fixed delay. A scan
// issued while another is pending is not guarded against; the later one
// wins the view.
func (s *Scanner) Open(ctx context.Context, ownerAddress string) {
	s.mu.Lock()
	s.state = StateScanning
	s.mu.Unlock()

	s.view.HideResult()
	s.view.SetStatusText(statusScanning)
	s.view.ShowModal()
	s.logger.Info("scan started", "owner", ownerAddress)

	s.clock.AfterFunc(s.delay, func() { s.finish(ctx, ownerAddress) })
}

func (s *Scanner) finish(ctx context.Context, owner string) {
	name := s.resolver.ResolveName(ctx, owner)
	if name == "" {
		name = ResultUnavailable
	}

	// A close may have raced the timer. The writes below then land on a
	// hidden panel, which is harmless; the state stays Closed so the next
	// Open starts clean.
	s.view.ShowResult(owner, name)
	s.view.SetStatusText(statusComplete)

	s.mu.Lock()
	if s.state == StateScanning {
		s.state = StateResult
	}
	s.mu.Unlock()
}

// Close hides the modal. A pending scan is not cancelled; see finish.
func (s *Scanner) Close() {
	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()
	s.view.HideModal()
}

// HandleClick processes a page click: a click outside an open modal closes
// it, clicks inside it do nothing.
func (s *Scanner) HandleClick(insideModal bool) {
	if insideModal {
		return
	}
	if s.State() != StateClosed {
		s.Close()
	}
}
