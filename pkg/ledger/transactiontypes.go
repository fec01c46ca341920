package ledger

import (
	"database/sql"
	"strings"
)

// GetTransactionTypes returns all transaction types.
func (c *Core) GetTransactionTypes() ([]TransactionType, error) {
	rows, err := c.db.Query("SELECT id, name, direction, is_investment FROM transaction_types ORDER BY id")
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list transaction types", err)
	}
	defer rows.Close()

	var types []TransactionType
	for rows.Next() {
		var t TransactionType
		var isInvestment int
		if err := rows.Scan(&t.ID, &t.Name, &t.Direction, &isInvestment); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan transaction type", err)
		}
		t.IsInvestment = isInvestment != 0
		types = append(types, t)
	}
	return types, rows.Err()
}

// AddTransactionType creates a type. When direction is empty it is derived
// from the label through the legacy keyword classifier, so migrated data
// keeps its historical meaning.
func (c *Core) AddTransactionType(name string, direction Direction, isInvestment bool) (*TransactionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(ErrCodeInvalidInput, "transaction type name is required")
	}
	if direction == "" {
		direction = ClassifyLabel(name)
	}
	if !direction.Valid() {
		return nil, NewErrorf(ErrCodeInvalidInput, "invalid direction %q", direction)
	}

	result, err := c.db.Exec(
		"INSERT INTO transaction_types (name, direction, is_investment) VALUES (?, ?, ?)",
		name, string(direction), boolToInt(isInvestment),
	)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert transaction type", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert transaction type", err)
	}
	return &TransactionType{ID: id, Name: name, Direction: direction, IsInvestment: isInvestment}, nil
}

func transactionTypeTx(tx *sql.Tx, id int64) (*TransactionType, error) {
	var t TransactionType
	var isInvestment int
	err := tx.QueryRow(
		"SELECT id, name, direction, is_investment FROM transaction_types WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.Direction, &isInvestment)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeNotFound, "transaction type %d not found", id)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load transaction type", err)
	}
	t.IsInvestment = isInvestment != 0
	return &t, nil
}

// transactionTypeByDirection picks the oldest non-investment type with the
// given direction. The bulk importer uses it to map signed statement rows to
// the seeded Despesa/Receita types.
func (c *Core) transactionTypeByDirection(direction Direction) (*TransactionType, error) {
	var t TransactionType
	var isInvestment int
	err := c.db.QueryRow(`
		SELECT id, name, direction, is_investment FROM transaction_types
		WHERE direction = ? AND is_investment = 0 ORDER BY id LIMIT 1
	`, string(direction)).Scan(&t.ID, &t.Name, &t.Direction, &isInvestment)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeNotFound, "no %s transaction type configured", direction)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load transaction type", err)
	}
	t.IsInvestment = isInvestment != 0
	return &t, nil
}
