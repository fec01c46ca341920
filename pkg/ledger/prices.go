package ledger

// RecordPrice appends a close-price observation for a symbol. The series is
// append-only; nothing is updated in place, so re-recording a date simply
// adds a newer row that wins the latest-price lookup.
func (c *Core) RecordPrice(symbol, date string, closePrice float64) (*PriceObservation, error) {
	if date == "" {
		date = todayISO()
	}
	if !isValidDate(date) {
		return nil, NewErrorf(ErrCodeInvalidInput, "invalid date %q, want YYYY-MM-DD", date)
	}
	if closePrice <= 0 {
		return nil, NewError(ErrCodeInvalidInput, "close price must be positive")
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "begin", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	assetID, err := ensureAssetTx(tx, symbol)
	if err != nil {
		return nil, err
	}
	result, err := tx.Exec(
		"INSERT INTO asset_prices (asset_id, date, close_price) VALUES (?, ?, ?)",
		assetID, date, closePrice,
	)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert price", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert price", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "commit", err)
	}
	return &PriceObservation{
		ID:         id,
		AssetID:    assetID,
		Symbol:     normalizeSymbol(symbol),
		Date:       date,
		ClosePrice: closePrice,
	}, nil
}

// latestCloses returns the most recent observed close per asset, ordered by
// date with insertion order breaking same-date ties.
func (c *Core) latestCloses() (map[int64]float64, error) {
	rows, err := c.db.Query("SELECT asset_id, close_price FROM asset_prices ORDER BY date ASC, id ASC")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list prices", err)
	}
	defer rows.Close()

	latest := map[int64]float64{}
	for rows.Next() {
		var assetID int64
		var price float64
		if err := rows.Scan(&assetID, &price); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan price", err)
		}
		latest[assetID] = price
	}
	return latest, rows.Err()
}

// RefreshPrices asks the injected price source for every asset currently
// held above the dust threshold and appends today's observations. A source
// that has no price for a symbol is a skip, never an error. Returns the
// number of observations recorded.
func (c *Core) RefreshPrices() (int, error) {
	if c.prices == nil {
		return 0, NewError(ErrCodeInvalidInput, "no price source configured")
	}

	rows, err := c.db.Query(`
		SELECT DISTINCT s.id, s.symbol
		FROM holdings h
		JOIN assets s ON s.id = h.asset_id
		WHERE h.quantity > ?
	`, dustThreshold)
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "list held assets", err)
	}
	defer rows.Close()

	type heldAsset struct {
		id     int64
		symbol string
	}
	var held []heldAsset
	for rows.Next() {
		var a heldAsset
		if err := rows.Scan(&a.id, &a.symbol); err != nil {
			return 0, WrapError(ErrCodeDatabase, "scan held asset", err)
		}
		held = append(held, a)
	}
	if err := rows.Err(); err != nil {
		return 0, WrapError(ErrCodeDatabase, "list held assets", err)
	}

	today := todayISO()
	recorded := 0
	for _, a := range held {
		price, ok, err := c.prices.LatestPrice(a.symbol)
		if err != nil {
			c.logger.Warn("price source failed", "symbol", a.symbol, "err", err)
			continue
		}
		if !ok {
			c.logger.Info("price source has no quote", "symbol", a.symbol)
			continue
		}
		if _, err := c.db.Exec(
			"INSERT INTO asset_prices (asset_id, date, close_price) VALUES (?, ?, ?)",
			a.id, today, price,
		); err != nil {
			return recorded, WrapError(ErrCodeDatabase, "insert price", err)
		}
		recorded++
	}
	return recorded, nil
}
