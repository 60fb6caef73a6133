package session

import (
	"context"
	"errors"
	"testing"

	"github.com/khushi-labs/marketwallet/internal/storage"
	"github.com/khushi-labs/marketwallet/internal/wallet"
	"github.com/khushi-labs/marketwallet/pkg/models"
)

const testAddress = "0x1234567890abcdef1234567890abcdef12345678"

type fakeProvider struct {
	accounts []string
	err      error
	calls    int
}

func (p *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	p.calls++
	return p.accounts, p.err
}

type fakeResolver struct {
	name string
}

func (r fakeResolver) ResolveName(ctx context.Context, address string) string {
	return r.name
}

type fakePrompter struct {
	notices       []string
	confirmAnswer bool
	promptAnswer  string
	prompts       int
}

func (p *fakePrompter) Notify(message string) { p.notices = append(p.notices, message) }
func (p *fakePrompter) Confirm(string) bool { return p.confirmAnswer }
func (p *fakePrompter) Prompt(string) string {
	p.prompts++
	return p.promptAnswer
}

type fakeView struct {
	text    string
	reloads int
}

func (v *fakeView) SetStatusText(text string) { v.text = text }
func (v *fakeView) Reload() { v.reloads++ }

type fixture struct {
	manager  *Manager
	provider *fakeProvider
	prompter *fakePrompter
	view     *fakeView
	store    storage.KV
}

func newFixture(t *testing.T, provider *fakeProvider, resolver fakeResolver) *fixture {
	t.Helper()
	f := &fixture{
		provider: provider,
		prompter: &fakePrompter{},
		view:     &fakeView{},
		store:    storage.NewMemoryKV(),
	}
	var p wallet.Provider
	if provider != nil {
		p = provider
	}
	f.manager = NewManager(p, resolver, f.store, f.prompter, f.view, "User")
	return f
}

func TestConnect_ResolvedName(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{name: "alice.eth"})

	if err := f.manager.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	sess := f.manager.Session()
	if sess.Address != testAddress || sess.DisplayName != "alice.eth" {
		t.Errorf("session = %+v", sess)
	}
	if f.view.text != "alice.eth" {
		t.Errorf("indicator = %q, want alice.eth", f.view.text)
	}
	if f.prompter.prompts != 0 {
		t.Error("should not prompt when a name resolves")
	}
}

func TestConnect_ResolvedNameOverwritesChosen(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{name: "alice.eth"})
	if err := f.store.Set(nameKey, "Khushi"); err != nil {
		t.Fatal(err)
	}

	if err := f.manager.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.manager.Session().DisplayName; got != "alice.eth" {
		t.Errorf("display name = %q, resolved name should win", got)
	}
}

func TestConnect_PromptsWhenUnresolved(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{})
	f.prompter.promptAnswer = "Khushi"

	if err := f.manager.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.manager.Session().DisplayName; got != "Khushi" {
		t.Errorf("display name = %q, want Khushi", got)
	}
	if f.view.text != "Khushi" {
		t.Errorf("indicator = %q, want Khushi", f.view.text)
	}
}

func TestConnect_EmptyPromptFallsBackToDefault(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{})

	if err := f.manager.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := f.manager.Session().DisplayName; got != "User" {
		t.Errorf("display name = %q, want the default", got)
	}
}

func TestConnect_KeepsExistingChosenName(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{})
	if err := f.store.Set(nameKey, "Khushi"); err != nil {
		t.Fatal(err)
	}

	if err := f.manager.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if f.prompter.prompts != 0 {
		t.Error("should not prompt when a name is already stored")
	}
	if got := f.manager.Session().DisplayName; got != "Khushi" {
		t.Errorf("display name = %q, want Khushi", got)
	}
}

func TestConnect_NoProvider(t *testing.T) {
	f := newFixture(t, nil, fakeResolver{})

	err := f.manager.Connect(context.Background())
	if !errors.Is(err, wallet.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if len(f.prompter.notices) != 1 {
		t.Error("missing provider should surface a blocking notice")
	}
	if f.manager.Session().Active() {
		t.Error("session should stay disconnected")
	}
}

func TestConnect_FailureLeavesNoPartialSession(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"request error", &fakeProvider{err: errors.New("user rejected")}},
		{"no accounts", &fakeProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.provider, fakeResolver{name: "alice.eth"})

			err := f.manager.Connect(context.Background())
			if !errors.Is(err, ErrConnectionFailed) {
				t.Fatalf("err = %v, want ErrConnectionFailed", err)
			}
			sess := f.manager.Session()
			if sess.Address != "" || sess.DisplayName != "" {
				t.Errorf("session not fully cleared: %+v", sess)
			}
			if f.view.text != models.DisconnectedLabel {
				t.Errorf("indicator = %q, want disconnected label", f.view.text)
			}
			if len(f.prompter.notices) != 1 {
				t.Error("failure should surface a generic notice")
			}
		})
	}
}

func TestRefreshIndicator_ShortAddress(t *testing.T) {
	f := newFixture(t, &fakeProvider{}, fakeResolver{})
	if err := f.store.Set(addressKey, testAddress); err != nil {
		t.Fatal(err)
	}

	f.manager.RefreshIndicator()
	if f.view.text != "0x1234...5678" {
		t.Errorf("indicator = %q, want 0x1234...5678", f.view.text)
	}
}

func TestDisconnect_Declined(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{name: "alice.eth"})
	if err := f.manager.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	if f.manager.Disconnect() {
		t.Fatal("declined disconnect should report false")
	}
	sess := f.manager.Session()
	if sess.Address != testAddress || sess.DisplayName != "alice.eth" {
		t.Errorf("declining should leave the session unchanged: %+v", sess)
	}
	if f.view.reloads != 0 {
		t.Error("declining should not reload")
	}
}

func TestDisconnect_Confirmed(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{name: "alice.eth"})
	if err := f.manager.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	f.prompter.confirmAnswer = true

	if !f.manager.Disconnect() {
		t.Fatal("confirmed disconnect should report true")
	}
	if _, ok := f.store.Get(addressKey); ok {
		t.Error("address key should be cleared")
	}
	if _, ok := f.store.Get(nameKey); ok {
		t.Error("name key should be cleared")
	}
	if f.view.text != models.DisconnectedLabel {
		t.Errorf("indicator = %q, want disconnected label", f.view.text)
	}
	if f.view.reloads != 1 {
		t.Error("confirmed disconnect should reload the page")
	}
}

func TestHandleClick_Routes(t *testing.T) {
	f := newFixture(t, &fakeProvider{accounts: []string{testAddress}}, fakeResolver{name: "alice.eth"})

	f.manager.HandleClick(context.Background())
	if f.provider.calls != 1 {
		t.Fatal("click while disconnected should connect")
	}
	if !f.manager.Session().Active() {
		t.Fatal("session should be active after click-connect")
	}

	// Second click attempts disconnect; declined, so still connected.
	f.manager.HandleClick(context.Background())
	if f.provider.calls != 1 {
		t.Error("click while connected should not reconnect")
	}
	if !f.manager.Session().Active() {
		t.Error("declined disconnect should keep the session")
	}
}
