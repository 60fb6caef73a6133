package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/khushi-labs/marketwallet/internal/ens"
	"github.com/khushi-labs/marketwallet/internal/storage"
	"github.com/khushi-labs/marketwallet/internal/ui"
	"github.com/khushi-labs/marketwallet/internal/wallet"
	"github.com/khushi-labs/marketwallet/pkg/models"
)

// Session-scoped storage keys.
const (
	addressKey = "userAddress"
	nameKey    = "username"
)

// ErrConnectionFailed covers any connect failure other than a missing
// provider. The detail is logged; users only see a generic notice.
var ErrConnectionFailed = errors.New("could not connect wallet")

// View is the host UI surface the manager drives: the status control's text,
// and a page reload after disconnect.
type View interface {
	SetStatusText(text string)
	Reload()
}

// Manager owns the wallet connection lifecycle and the status control.
// The session lives in a session-scoped KV store, so it survives within one
// host session and nothing longer.
type Manager struct {
	provider    wallet.Provider // nil when the environment has no wallet
	resolver    ens.Resolver
	store       storage.KV
	prompter    ui.Prompter
	view        View
	defaultName string
	logger      *slog.Logger
}

func NewManager(provider wallet.Provider, resolver ens.Resolver, store storage.KV, prompter ui.Prompter, view View, defaultName string) *Manager {
	return &Manager{
		provider:    provider,
		resolver:    resolver,
		store:       store,
		prompter:    prompter,
		view:        view,
		defaultName: defaultName,
		logger:      slog.Default().With("component", "session"),
	}
}

// Session reads the current session state from storage.
func (m *Manager) Session() models.Session {
	addr, _ := m.store.Get(addressKey)
	name, _ := m.store.Get(nameKey)
	return models.Session{Address: addr, DisplayName: name}
}

// Connect obtains the active account from the provider, resolves or asks for
// a display name, and updates the status control. Any failure leaves the
// session fully cleared, never half-set, and is reported to the user as a
// notice rather than propagated as a page-breaking error.
func (m *Manager) Connect(ctx context.Context) error {
	if m.provider == nil {
		m.prompter.Notify("Please install a wallet first.")
		return wallet.ErrProviderUnavailable
	}

	if err := m.connect(ctx); err != nil {
		m.clear()
		m.RefreshIndicator()
		m.logger.Error("wallet connect failed", "error", err)
		m.prompter.Notify("Could not connect wallet.")
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	m.RefreshIndicator()
	return nil
}

func (m *Manager) connect(ctx context.Context) error {
	accounts, err := m.provider.RequestAccounts(ctx)
	if err != nil {
		return fmt.Errorf("request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return wallet.ErrNoAccounts
	}

	// Single-account assumption: the first returned account is canonical.
	address := accounts[0]
	if err := m.store.Set(addressKey, address); err != nil {
		return fmt.Errorf("store address: %w", err)
	}

	m.logger.Info("wallet connected", "address", models.ShortAddress(address))

	// A resolved name wins over anything chosen earlier.
	if name := m.resolver.ResolveName(ctx, address); name != "" {
		return m.store.Set(nameKey, name)
	}

	// Keep a name picked earlier this session; only ask when there is none.
	if _, ok := m.store.Get(nameKey); ok {
		return nil
	}
	name := m.prompter.Prompt("Enter your display name (e.g., Khushi):")
	if name == "" {
		name = m.defaultName
	}
	return m.store.Set(nameKey, name)
}

// RefreshIndicator re-renders the status control from current session state.
// Safe to call any number of times.
func (m *Manager) RefreshIndicator() {
	m.view.SetStatusText(m.Session().Label())
}

// Disconnect asks for confirmation, then clears the session and reloads the
// page. It reports whether the user confirmed; declining changes nothing.
func (m *Manager) Disconnect() bool {
	if !m.prompter.Confirm("Disconnect wallet?") {
		return false
	}
	m.clear()
	m.RefreshIndicator()
	m.view.Reload()
	m.logger.Info("wallet disconnected")
	return true
}

// HandleClick routes a status-control click: disconnect (with confirmation)
// when a session is active, connect otherwise. Errors are swallowed here
// because Connect has already surfaced them to the user.
func (m *Manager) HandleClick(ctx context.Context) {
	if m.Session().Active() {
		m.Disconnect()
		return
	}
	_ = m.Connect(ctx)
}

func (m *Manager) clear() {
	_ = m.store.Delete(addressKey)
	_ = m.store.Delete(nameKey)
}
