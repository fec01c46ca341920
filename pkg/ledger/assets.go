package ledger

import (
	"database/sql"
	"strings"
)

// AddAsset registers an instrument. Symbols are unique and uppercased.
func (c *Core) AddAsset(symbol, name, assetType string) (*Asset, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, NewError(ErrCodeInvalidInput, "asset symbol is required")
	}
	if assetType == "" {
		assetType = "Stock"
	}
	var namePtr *string
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		namePtr = &trimmed
	}
	result, err := c.db.Exec(
		"INSERT INTO assets (symbol, name, asset_type) VALUES (?, ?, ?)",
		symbol, namePtr, assetType,
	)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert asset", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert asset", err)
	}
	return &Asset{ID: id, Symbol: symbol, Name: namePtr, AssetType: assetType}, nil
}

// GetAssets returns all known assets.
func (c *Core) GetAssets() ([]Asset, error) {
	rows, err := c.db.Query("SELECT id, symbol, name, asset_type FROM assets ORDER BY symbol")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list assets", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		var name sql.NullString
		if err := rows.Scan(&a.ID, &a.Symbol, &name, &a.AssetType); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan asset", err)
		}
		if name.Valid {
			a.Name = &name.String
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// ensureAssetTx resolves a symbol to an asset id inside a write transaction,
// creating the asset on first sight.
func ensureAssetTx(tx *sql.Tx, symbol string) (int64, error) {
	normalized := normalizeSymbol(symbol)
	if normalized == "" {
		return 0, NewError(ErrCodeInvalidInput, "asset symbol is required")
	}

	var id int64
	err := tx.QueryRow("SELECT id FROM assets WHERE symbol = ?", normalized).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, WrapError(ErrCodeDatabase, "lookup asset", err)
	}

	result, err := tx.Exec("INSERT INTO assets (symbol, asset_type) VALUES (?, 'Stock')", normalized)
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert asset", err)
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert asset", err)
	}
	return newID, nil
}
