package ledger

import "sort"

// dustThreshold filters positions whose quantity is effectively zero.
const dustThreshold = 1e-4

// Portfolio marks the caller's holdings to market and aggregates them with
// account cash. Positions of the same asset held in several accounts are
// consolidated into one row: summed quantity, cost-weighted average buy
// price, and the most recent observed close. An asset with no observation
// is valued at its average cost, which forces its unrealized P&L to zero,
// an intentional degraded mode rather than an error.
func (c *Core) Portfolio(ownerID int64) (*PortfolioSnapshot, error) {
	accounts, err := c.GetAccounts(ownerID)
	if err != nil {
		return nil, err
	}

	var totalCash Amount
	for _, acc := range accounts {
		totalCash = totalCash.Add(acc.CurrentBalance)
	}

	holdings, err := c.GetHoldings(ownerID)
	if err != nil {
		return nil, err
	}
	latest, err := c.latestCloses()
	if err != nil {
		return nil, err
	}

	type aggregate struct {
		symbol   string
		quantity float64
		costSum  float64
	}
	byAsset := map[int64]*aggregate{}
	for _, h := range holdings {
		if h.Quantity <= dustThreshold {
			continue
		}
		agg := byAsset[h.AssetID]
		if agg == nil {
			agg = &aggregate{symbol: h.Symbol}
			byAsset[h.AssetID] = agg
		}
		agg.quantity += h.Quantity
		agg.costSum += h.Quantity * h.AvgBuyPrice
	}

	assetIDs := make([]int64, 0, len(byAsset))
	for id := range byAsset {
		assetIDs = append(assetIDs, id)
	}
	sort.Slice(assetIDs, func(i, j int) bool {
		return byAsset[assetIDs[i]].symbol < byAsset[assetIDs[j]].symbol
	})

	positions := make([]Position, 0, len(assetIDs))
	totalInvested := 0.0
	for _, assetID := range assetIDs {
		agg := byAsset[assetID]
		avgBuy := agg.costSum / agg.quantity

		currentPrice, ok := latest[assetID]
		if !ok {
			currentPrice = avgBuy
		}
		marketValue := agg.quantity * currentPrice
		totalInvested += marketValue

		positions = append(positions, Position{
			Symbol:       agg.symbol,
			Quantity:     agg.quantity,
			AvgBuyPrice:  avgBuy,
			CurrentPrice: currentPrice,
			MarketValue:  marketValue,
			UnrealizedPL: marketValue - agg.quantity*avgBuy,
		})
	}

	invested := NewAmount(totalInvested)
	return &PortfolioSnapshot{
		TotalCash:     totalCash,
		TotalInvested: invested,
		NetWorth:      totalCash.Add(invested),
		Positions:     positions,
	}, nil
}
