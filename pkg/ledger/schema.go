package ledger

import "database/sql"

func initDatabase(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	tables := []string{
		`CREATE TABLE IF NOT EXISTS account_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			account_type_id INTEGER NOT NULL,
			currency_code TEXT NOT NULL DEFAULT 'EUR',
			current_balance REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(account_type_id) REFERENCES account_types(id) ON DELETE RESTRICT
		)`,
		`CREATE TABLE IF NOT EXISTS transaction_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			direction TEXT NOT NULL CHECK(direction IN ('outflow', 'inflow')),
			is_investment INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			name TEXT NOT NULL,
			UNIQUE(user_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS sub_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY(category_id) REFERENCES categories(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS assets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL UNIQUE,
			name TEXT,
			asset_type TEXT NOT NULL DEFAULT 'Stock'
		)`,
		`CREATE TABLE IF NOT EXISTS asset_prices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			asset_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			close_price REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES assets(id) ON DELETE RESTRICT
		)`,
		`CREATE TABLE IF NOT EXISTS holdings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account_id INTEGER NOT NULL,
			asset_id INTEGER NOT NULL,
			quantity REAL NOT NULL DEFAULT 0,
			avg_buy_price REAL NOT NULL DEFAULT 0,
			UNIQUE(account_id, asset_id),
			FOREIGN KEY(account_id) REFERENCES accounts(id) ON DELETE RESTRICT,
			FOREIGN KEY(asset_id) REFERENCES assets(id) ON DELETE RESTRICT
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount REAL NOT NULL CHECK(amount >= 0),
			account_id INTEGER NOT NULL,
			transaction_type_id INTEGER NOT NULL,
			sub_category_id INTEGER,
			asset_id INTEGER,
			quantity REAL,
			price_per_unit REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME,
			FOREIGN KEY(account_id) REFERENCES accounts(id) ON DELETE RESTRICT,
			FOREIGN KEY(transaction_type_id) REFERENCES transaction_types(id) ON DELETE RESTRICT,
			FOREIGN KEY(sub_category_id) REFERENCES sub_categories(id) ON DELETE RESTRICT,
			FOREIGN KEY(asset_id) REFERENCES assets(id) ON DELETE RESTRICT
		)`,
	}
	for _, ddl := range tables {
		if _, err := tx.Exec(ddl); err != nil {
			return err
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(transaction_type_id)",
		"CREATE INDEX IF NOT EXISTS idx_asset_prices_asset_date ON asset_prices(asset_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_accounts_user ON accounts(user_id)",
	}
	for _, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return err
		}
	}

	if err := seedAccountTypes(tx); err != nil {
		return err
	}
	if err := seedTransactionTypes(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func seedAccountTypes(tx *sql.Tx) error {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM account_types").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range []string{"Conta à Ordem", "Investimento", "Poupança", "Crypto Wallet"} {
		if _, err := tx.Exec("INSERT INTO account_types (name) VALUES (?)", name); err != nil {
			return err
		}
	}
	return nil
}

// seedTransactionTypes installs the four default types. Directions are
// derived once from the legacy keyword classifier and stored explicitly.
func seedTransactionTypes(tx *sql.Tx) error {
	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM transaction_types").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	defaults := []struct {
		Name         string
		IsInvestment bool
	}{
		{"Despesa", false},
		{"Receita", false},
		{"Compra Ativo", true},
		{"Venda Ativo", true},
	}
	for _, d := range defaults {
		if _, err := tx.Exec(
			"INSERT INTO transaction_types (name, direction, is_investment) VALUES (?, ?, ?)",
			d.Name, string(ClassifyLabel(d.Name)), boolToInt(d.IsInvestment),
		); err != nil {
			return err
		}
	}
	return nil
}
