package wallet

import (
	"context"
	"errors"
)

// Provider defines the boundary to a wallet capability. Absence of a provider
// is a recoverable condition for callers, not a fatal one.
type Provider interface {
	// RequestAccounts asks the wallet for its account addresses. Callers
	// treat the first returned address as the active account.
	RequestAccounts(ctx context.Context) ([]string, error)
}

// ErrProviderUnavailable indicates no wallet capability is present in the
// environment.
var ErrProviderUnavailable = errors.New("no wallet provider available")

// ErrNoAccounts indicates the provider responded with an empty account list.
var ErrNoAccounts = errors.New("wallet returned no accounts")
