package ledger

import (
	"database/sql"
	"strings"
)

// AddAccount creates an account for ownerID with a zero balance. The balance
// is never writable through this API; it only moves via transactions.
func (c *Core) AddAccount(ownerID int64, name string, accountTypeID int64, currencyCode string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(ErrCodeInvalidInput, "account name is required")
	}
	if currencyCode == "" {
		currencyCode = "EUR"
	}

	var exists int
	err := c.db.QueryRow("SELECT 1 FROM account_types WHERE id = ?", accountTypeID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeInvalidInput, "unknown account type %d", accountTypeID)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "check account type", err)
	}

	result, err := c.db.Exec(`
		INSERT INTO accounts (user_id, name, account_type_id, currency_code, current_balance)
		VALUES (?, ?, ?, ?, 0)
	`, ownerID, name, accountTypeID, currencyCode)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert account", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert account", err)
	}
	return c.GetAccount(ownerID, id)
}

// GetAccount returns one account, verifying ownership.
func (c *Core) GetAccount(ownerID, accountID int64) (*Account, error) {
	row := c.db.QueryRow(`
		SELECT id, user_id, name, account_type_id, currency_code, current_balance, created_at
		FROM accounts WHERE id = ?
	`, accountID)
	acc, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeNotFound, "account %d not found", accountID)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load account", err)
	}
	if acc.UserID != ownerID {
		return nil, NewErrorf(ErrCodePermissionDenied, "account %d is not owned by caller", accountID)
	}
	return acc, nil
}

// GetAccounts returns all accounts owned by ownerID.
func (c *Core) GetAccounts(ownerID int64) ([]Account, error) {
	rows, err := c.db.Query(`
		SELECT id, user_id, name, account_type_id, currency_code, current_balance, created_at
		FROM accounts WHERE user_id = ? ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list accounts", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan account", err)
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

// GetAccountTypes returns the seeded account types.
func (c *Core) GetAccountTypes() ([]AccountType, error) {
	rows, err := c.db.Query("SELECT id, name FROM account_types ORDER BY id")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list account types", err)
	}
	defer rows.Close()

	var types []AccountType
	for rows.Next() {
		var t AccountType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan account type", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*Account, error) {
	var acc Account
	var createdAt sql.NullString
	if err := row.Scan(&acc.ID, &acc.UserID, &acc.Name, &acc.AccountTypeID, &acc.CurrencyCode, &acc.CurrentBalance, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		acc.CreatedAt = &createdAt.String
	}
	return &acc, nil
}

// accountForUpdateTx loads an account inside a write transaction and
// enforces ownership. Both the not-found and the permission failure abort
// before any mutation happens.
func accountForUpdateTx(tx *sql.Tx, accountID, ownerID int64) (*Account, error) {
	row := tx.QueryRow(`
		SELECT id, user_id, name, account_type_id, currency_code, current_balance, created_at
		FROM accounts WHERE id = ?
	`, accountID)
	acc, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeNotFound, "account %d not found", accountID)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load account", err)
	}
	if acc.UserID != ownerID {
		return nil, NewErrorf(ErrCodePermissionDenied, "account %d is not owned by caller", accountID)
	}
	return acc, nil
}

func addToBalanceTx(tx *sql.Tx, accountID int64, delta Amount) error {
	var balance Amount
	if err := tx.QueryRow("SELECT current_balance FROM accounts WHERE id = ?", accountID).Scan(&balance); err != nil {
		return WrapError(ErrCodeDatabase, "read balance", err)
	}
	if _, err := tx.Exec("UPDATE accounts SET current_balance = ? WHERE id = ?", balance.Add(delta), accountID); err != nil {
		return WrapError(ErrCodeDatabase, "write balance", err)
	}
	return nil
}
