package ens

import "context"

// Resolver reverse-resolves a human-readable name for a wallet address.
// Lookups are best effort: the empty string means "no name found", and no
// failure (missing provider, network error, malformed address, absent reverse
// record) is ever surfaced as an error.
type Resolver interface {
	ResolveName(ctx context.Context, address string) string
}

// Nop is the resolver used when no naming-capable provider is configured.
type Nop struct{}

func (Nop) ResolveName(ctx context.Context, address string) string { return "" }
