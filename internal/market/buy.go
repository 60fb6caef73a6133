package market

import (
	"fmt"
	"log/slog"

	"github.com/khushi-labs/marketwallet/internal/ui"
)

// Checkout simulates purchases. Nothing is signed, submitted, or recorded.
// The whole flow is a user-facing confirmation message.
type Checkout struct {
	prompter ui.Prompter
	logger   *slog.Logger
}

func NewCheckout(prompter ui.Prompter) *Checkout {
	return &Checkout{
		prompter: prompter,
		logger:   slog.Default().With("component", "checkout"),
	}
}

// BuyItem immediately shows a confirmation containing the literal item name
// and price. No state changes and no external calls are made.
func (c *Checkout) BuyItem(name, price string) {
	c.logger.Info("simulated purchase", "item", name, "price", price)
	c.prompter.Notify(fmt.Sprintf("Simulated purchase:\nItem: %s\nPrice: %s ETH", name, price))
}
