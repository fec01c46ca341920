package ledger

import "log/slog"

// Weighted-average cost basis for a single (account, asset) position.
//
// Buys blend the unit price into the running average; sells reduce quantity
// and leave the average untouched. Reversals are quantity-only: once a later
// buy has blended the average, the prior average is not recoverable without
// an undo log, so reversing a buy restores quantity but keeps the blended
// average. That loss is accepted behavior, not a bug.

// applyBuy adds qty at unitPrice to the position.
func applyBuy(h *Holding, qty, unitPrice float64) {
	newQty := h.Quantity + qty
	if newQty > 0 {
		h.AvgBuyPrice = (h.Quantity*h.AvgBuyPrice + qty*unitPrice) / newQty
	}
	h.Quantity = newQty
}

// applySell removes qty from the position, clamping at zero. Overselling is
// tolerated as a data-quality shortcut and logged.
func applySell(logger *slog.Logger, h *Holding, qty float64) {
	if qty > h.Quantity {
		logger.Warn("sell exceeds held quantity, clamping to zero",
			"asset_id", h.AssetID, "account_id", h.AccountID,
			"held", h.Quantity, "sell_qty", qty)
		h.Quantity = 0
		return
	}
	h.Quantity -= qty
}

// reverseBuy undoes a buy's quantity effect, clamped at zero.
func reverseBuy(h *Holding, qty float64) {
	h.Quantity -= qty
	if h.Quantity < 0 {
		h.Quantity = 0
	}
}

// reverseSell undoes a sell's quantity effect.
func reverseSell(h *Holding, qty float64) {
	h.Quantity += qty
}

// resolveUnitPrice returns the explicit unit price when supplied, otherwise
// falls back to amount/qty. Returns 0 when qty is 0.
func resolveUnitPrice(amount Amount, qty float64, pricePerUnit *float64) float64 {
	if pricePerUnit != nil && *pricePerUnit > 0 {
		return *pricePerUnit
	}
	if qty == 0 {
		return 0
	}
	return amount.Float64() / qty
}
