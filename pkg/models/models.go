package models

import "fmt"

// DisconnectedLabel is shown on the status control when no wallet is connected.
const DisconnectedLabel = "Connect Wallet"

// Session holds the per-tab wallet connection state.
// DisplayName is only meaningful while Address is set; both are cleared
// together on disconnect.
type Session struct {
	Address     string `json:"address,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Active reports whether a wallet is currently connected.
func (s Session) Active() bool {
	return s.Address != ""
}

// Label renders the text for the status control: the fixed label when
// disconnected, the display name when one is set, otherwise the abbreviated
// address.
func (s Session) Label() string {
	if !s.Active() {
		return DisconnectedLabel
	}
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return ShortAddress(s.Address)
}

// ShortAddress abbreviates a wallet address to the first 6 and last 4
// characters (e.g. "0x1234...5678"). Addresses too short to abbreviate are
// returned unchanged.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
}

// ItemIDField is the field every listed item is keyed by.
const ItemIDField = "id"

// Item is a marketplace listing. Beyond the identifier the fields are
// caller-defined (name, price, owner address, ...) and opaque to the store.
type Item map[string]any

// ID returns the item's identifier, or "" when absent or not a string.
func (i Item) ID() string {
	id, _ := i[ItemIDField].(string)
	return id
}

// Merge returns a copy of the item with fields overlaid on top. Fields not
// mentioned in the overlay are preserved; the receiver is not modified.
func (i Item) Merge(fields map[string]any) Item {
	out := make(Item, len(i)+len(fields))
	for k, v := range i {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
