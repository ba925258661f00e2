package candles

import (
	"github.com/shopspring/decimal"

	"github.com/vovakirdan/candle-jumper/internal/config"
)

// Wallet accumulates the cosmetic per-landing reward in fixed point.
type Wallet struct {
	cfg      config.RewardConfig
	total    decimal.Decimal
	landings int
}

// NewWallet creates an empty wallet.
func NewWallet(cfg config.RewardConfig) *Wallet {
	return &Wallet{cfg: cfg}
}

// Draw returns a random landing amount in [min, max) x multiplier, rounded to
// the configured precision. It does not credit the wallet.
func (w *Wallet) Draw(rng Source) decimal.Decimal {
	span := w.cfg.MaxPerJump.Sub(w.cfg.MinPerJump)
	r := decimal.NewFromFloat(rng.Float64())
	return w.cfg.MinPerJump.Add(span.Mul(r)).Mul(w.cfg.Multiplier).Round(w.cfg.Precision)
}

// Credit adds amount to the total.
func (w *Wallet) Credit(amount decimal.Decimal) {
	w.total = w.total.Add(amount)
	w.landings++
}

// Total returns the accumulated reward.
func (w *Wallet) Total() decimal.Decimal {
	return w.total
}

// Landings returns how many rewards were credited.
func (w *Wallet) Landings() int {
	return w.landings
}

// Reset zeroes the wallet.
func (w *Wallet) Reset() {
	w.total = decimal.Zero
	w.landings = 0
}

// String formats the total with the configured precision and symbol.
func (w *Wallet) String() string {
	return FormatReward(w.total, w.cfg)
}

// FormatReward formats an amount like "0.016000 $MUL".
func FormatReward(amount decimal.Decimal, cfg config.RewardConfig) string {
	s := amount.StringFixed(cfg.Precision)
	if cfg.Symbol == "" {
		return s
	}
	return s + " " + cfg.Symbol
}
