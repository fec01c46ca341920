package ledger

import "database/sql"

// GetHoldings returns every holding row across the caller's accounts,
// including positions sold down to zero (kept for history).
func (c *Core) GetHoldings(ownerID int64) ([]Holding, error) {
	rows, err := c.db.Query(`
		SELECT h.id, h.account_id, h.asset_id, s.symbol, h.quantity, h.avg_buy_price
		FROM holdings h
		JOIN assets s ON s.id = h.asset_id
		JOIN accounts a ON a.id = h.account_id
		WHERE a.user_id = ?
		ORDER BY s.symbol, h.account_id
	`, ownerID)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list holdings", err)
	}
	defer rows.Close()

	var holdings []Holding
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.ID, &h.AccountID, &h.AssetID, &h.Symbol, &h.Quantity, &h.AvgBuyPrice); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan holding", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// holdingForUpdateTx loads the (account, asset) position inside a write
// transaction, creating the row lazily on first use.
func holdingForUpdateTx(tx *sql.Tx, accountID, assetID int64) (*Holding, error) {
	var h Holding
	err := tx.QueryRow(`
		SELECT id, account_id, asset_id, quantity, avg_buy_price
		FROM holdings WHERE account_id = ? AND asset_id = ?
	`, accountID, assetID).Scan(&h.ID, &h.AccountID, &h.AssetID, &h.Quantity, &h.AvgBuyPrice)
	if err == nil {
		return &h, nil
	}
	if err != sql.ErrNoRows {
		return nil, WrapError(ErrCodeDatabase, "load holding", err)
	}

	result, err := tx.Exec(`
		INSERT INTO holdings (account_id, asset_id, quantity, avg_buy_price)
		VALUES (?, ?, 0, 0)
	`, accountID, assetID)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "create holding", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "create holding", err)
	}
	return &Holding{ID: id, AccountID: accountID, AssetID: assetID}, nil
}

func saveHoldingTx(tx *sql.Tx, h *Holding) error {
	if _, err := tx.Exec(
		"UPDATE holdings SET quantity = ?, avg_buy_price = ? WHERE id = ?",
		h.Quantity, h.AvgBuyPrice, h.ID,
	); err != nil {
		return WrapError(ErrCodeDatabase, "save holding", err)
	}
	return nil
}
