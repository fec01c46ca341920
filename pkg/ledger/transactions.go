package ledger

import (
	"database/sql"
	"strings"
)

// txEffect is the normalized effect of one transaction: a signed cash delta
// on exactly one account and, optionally, a quantity/cost change on exactly
// one holding.
type txEffect struct {
	accountID int64
	direction Direction
	amount    Amount
	assetID   *int64
	quantity  float64
	unitPrice float64
}

// CreateTransaction posts a new transaction: the account balance moves by
// the signed amount and an optional investment leg updates the (account,
// asset) holding through the cost-basis rules. The whole operation commits
// or rolls back as one unit.
func (c *Core) CreateTransaction(ownerID int64, req TransactionRequest) (*Transaction, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "begin", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := accountForUpdateTx(tx, req.AccountID, ownerID); err != nil {
		return nil, err
	}
	tt, err := transactionTypeTx(tx, req.TransactionTypeID)
	if err != nil {
		return nil, err
	}
	if err := checkLegAllowed(tt, &req); err != nil {
		return nil, err
	}
	if err := subCategoryExistsTx(tx, req.SubCategoryID); err != nil {
		return nil, err
	}

	effect, err := buildEffectTx(tx, tt, &req)
	if err != nil {
		return nil, err
	}
	if err := c.applyEffectTx(tx, effect); err != nil {
		return nil, err
	}

	id, err := insertTransactionTx(tx, &req, effect.assetID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "commit", err)
	}
	return c.GetTransaction(ownerID, id)
}

// UpdateTransaction replaces a transaction atomically: permission is
// verified on both the old and the new account before anything mutates,
// then the old effect is reversed, the row rewritten, and the new effect
// applied, all inside one database transaction, so a failure at any step
// leaves the ledger exactly as it was. Moving between two accounts of the
// same owner migrates both balances.
func (c *Core) UpdateTransaction(ownerID, id int64, req TransactionRequest) (*Transaction, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "begin", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	old, err := transactionTx(tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := accountForUpdateTx(tx, old.AccountID, ownerID); err != nil {
		return nil, err
	}
	if _, err := accountForUpdateTx(tx, req.AccountID, ownerID); err != nil {
		return nil, err
	}
	newType, err := transactionTypeTx(tx, req.TransactionTypeID)
	if err != nil {
		return nil, err
	}
	if err := checkLegAllowed(newType, &req); err != nil {
		return nil, err
	}
	if err := subCategoryExistsTx(tx, req.SubCategoryID); err != nil {
		return nil, err
	}

	if err := c.reverseEffectTx(tx, effectOf(old)); err != nil {
		return nil, err
	}

	effect, err := buildEffectTx(tx, newType, &req)
	if err != nil {
		return nil, err
	}
	if err := updateTransactionTx(tx, id, &req, effect.assetID); err != nil {
		return nil, err
	}
	if err := c.applyEffectTx(tx, effect); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "commit", err)
	}
	return c.GetTransaction(ownerID, id)
}

// DeleteTransaction reverses a transaction's effect and removes the record
// as one atomic unit.
func (c *Core) DeleteTransaction(ownerID, id int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return WrapError(ErrCodeDatabase, "begin", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	old, err := transactionTx(tx, id)
	if err != nil {
		return err
	}
	if _, err := accountForUpdateTx(tx, old.AccountID, ownerID); err != nil {
		return err
	}

	if err := c.reverseEffectTx(tx, effectOf(old)); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM transactions WHERE id = ?", id); err != nil {
		return WrapError(ErrCodeDatabase, "delete transaction", err)
	}

	if err := tx.Commit(); err != nil {
		return WrapError(ErrCodeDatabase, "commit", err)
	}
	return nil
}

// applyEffectTx adds the signed amount to the account balance and runs the
// investment leg, if any, through the cost-basis rules.
func (c *Core) applyEffectTx(tx *sql.Tx, e txEffect) error {
	if err := addToBalanceTx(tx, e.accountID, e.direction.Signed(e.amount)); err != nil {
		return err
	}
	if e.assetID == nil {
		return nil
	}
	h, err := holdingForUpdateTx(tx, e.accountID, *e.assetID)
	if err != nil {
		return err
	}
	if e.direction == DirectionOutflow {
		applyBuy(h, e.quantity, e.unitPrice)
	} else {
		applySell(c.logger, h, e.quantity)
	}
	return saveHoldingTx(tx, h)
}

// reverseEffectTx is the exact inverse of applyEffectTx for the cash leg.
// For the holding it undoes the quantity change only: the average cost is
// not restored (see costbasis.go).
func (c *Core) reverseEffectTx(tx *sql.Tx, e txEffect) error {
	if err := addToBalanceTx(tx, e.accountID, e.direction.Signed(e.amount).Neg()); err != nil {
		return err
	}
	if e.assetID == nil {
		return nil
	}
	h, err := holdingForUpdateTx(tx, e.accountID, *e.assetID)
	if err != nil {
		return err
	}
	if e.direction == DirectionOutflow {
		reverseBuy(h, e.quantity)
	} else {
		reverseSell(h, e.quantity)
	}
	return saveHoldingTx(tx, h)
}

func effectOf(t *Transaction) txEffect {
	e := txEffect{
		accountID: t.AccountID,
		direction: t.Direction,
		amount:    t.Amount,
		assetID:   t.AssetID,
	}
	if t.Quantity != nil {
		e.quantity = *t.Quantity
	}
	if e.assetID != nil {
		e.unitPrice = resolveUnitPrice(t.Amount, e.quantity, t.PricePerUnit)
	}
	return e
}

func buildEffectTx(tx *sql.Tx, tt *TransactionType, req *TransactionRequest) (txEffect, error) {
	e := txEffect{
		accountID: req.AccountID,
		direction: tt.Direction,
		amount:    req.Amount,
	}
	if req.AssetSymbol == "" {
		return e, nil
	}
	assetID, err := ensureAssetTx(tx, req.AssetSymbol)
	if err != nil {
		return e, err
	}
	e.assetID = &assetID
	e.quantity = *req.Quantity
	e.unitPrice = resolveUnitPrice(req.Amount, e.quantity, req.PricePerUnit)
	return e, nil
}

// validateRequest normalizes a request and enforces the structural
// invariants: non-negative magnitude, valid date, and a complete investment
// leg (symbol plus positive quantity) whenever any leg field is present.
func validateRequest(req *TransactionRequest) error {
	if req.Amount.IsNegative() {
		return NewError(ErrCodeInvariant, "amount must be a non-negative magnitude")
	}
	if req.Date == "" {
		req.Date = todayISO()
	}
	if !isValidDate(req.Date) {
		return NewErrorf(ErrCodeInvalidInput, "invalid date %q, want YYYY-MM-DD", req.Date)
	}
	req.AssetSymbol = strings.TrimSpace(req.AssetSymbol)

	hasLeg := req.AssetSymbol != "" || req.Quantity != nil || req.PricePerUnit != nil
	if !hasLeg {
		return nil
	}
	if req.AssetSymbol == "" {
		return NewError(ErrCodeInvariant, "investment leg requires an asset symbol")
	}
	if req.Quantity == nil || *req.Quantity <= 0 {
		return NewError(ErrCodeInvariant, "investment leg requires a positive quantity")
	}
	if req.PricePerUnit != nil && *req.PricePerUnit <= 0 {
		return NewError(ErrCodeInvalidInput, "price_per_unit must be positive when given")
	}
	return nil
}

// checkLegAllowed rejects an investment leg on a non-investment type. The
// legacy system silently ignored such legs; here the mismatch is a hard
// invariant violation.
func checkLegAllowed(tt *TransactionType, req *TransactionRequest) error {
	if req.AssetSymbol != "" && !tt.IsInvestment {
		return NewErrorf(ErrCodeInvariant, "transaction type %q cannot carry an investment leg", tt.Name)
	}
	return nil
}

func subCategoryExistsTx(tx *sql.Tx, id *int64) error {
	if id == nil {
		return nil
	}
	var exists int
	err := tx.QueryRow("SELECT 1 FROM sub_categories WHERE id = ?", *id).Scan(&exists)
	if err == sql.ErrNoRows {
		return NewErrorf(ErrCodeNotFound, "subcategory %d not found", *id)
	}
	if err != nil {
		return WrapError(ErrCodeDatabase, "check subcategory", err)
	}
	return nil
}

func insertTransactionTx(tx *sql.Tx, req *TransactionRequest, assetID *int64) (int64, error) {
	result, err := tx.Exec(`
		INSERT INTO transactions (
			date, description, amount, account_id, transaction_type_id,
			sub_category_id, asset_id, quantity, price_per_unit
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		req.Date, req.Description, req.Amount, req.AccountID, req.TransactionTypeID,
		req.SubCategoryID, assetID, req.Quantity, req.PricePerUnit,
	)
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert transaction", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert transaction", err)
	}
	return id, nil
}

func updateTransactionTx(tx *sql.Tx, id int64, req *TransactionRequest, assetID *int64) error {
	if _, err := tx.Exec(`
		UPDATE transactions SET
			date = ?, description = ?, amount = ?, account_id = ?,
			transaction_type_id = ?, sub_category_id = ?, asset_id = ?,
			quantity = ?, price_per_unit = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		req.Date, req.Description, req.Amount, req.AccountID,
		req.TransactionTypeID, req.SubCategoryID, assetID,
		req.Quantity, req.PricePerUnit, id,
	); err != nil {
		return WrapError(ErrCodeDatabase, "update transaction", err)
	}
	return nil
}

const transactionColumns = `
	t.id, t.date, t.description, t.amount, t.account_id, t.transaction_type_id,
	tt.name, tt.direction, tt.is_investment,
	t.sub_category_id, t.asset_id, s.symbol, t.quantity, t.price_per_unit,
	t.created_at, t.updated_at`

const transactionJoins = `
	FROM transactions t
	JOIN transaction_types tt ON tt.id = t.transaction_type_id
	LEFT JOIN assets s ON s.id = t.asset_id`

func scanTransaction(row rowScanner) (*Transaction, error) {
	var t Transaction
	var isInvestment int
	var subCategoryID, assetID sql.NullInt64
	var symbol, createdAt, updatedAt sql.NullString
	var quantity, pricePerUnit sql.NullFloat64
	if err := row.Scan(
		&t.ID, &t.Date, &t.Description, &t.Amount, &t.AccountID, &t.TransactionTypeID,
		&t.TypeName, &t.Direction, &isInvestment,
		&subCategoryID, &assetID, &symbol, &quantity, &pricePerUnit,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	t.IsInvestment = isInvestment != 0
	if subCategoryID.Valid {
		t.SubCategoryID = &subCategoryID.Int64
	}
	if assetID.Valid {
		t.AssetID = &assetID.Int64
	}
	if symbol.Valid {
		t.AssetSymbol = &symbol.String
	}
	if quantity.Valid {
		t.Quantity = &quantity.Float64
	}
	if pricePerUnit.Valid {
		t.PricePerUnit = &pricePerUnit.Float64
	}
	if createdAt.Valid {
		t.CreatedAt = &createdAt.String
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.String
	}
	return &t, nil
}

func transactionTx(tx *sql.Tx, id int64) (*Transaction, error) {
	row := tx.QueryRow("SELECT "+transactionColumns+transactionJoins+" WHERE t.id = ?", id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeNotFound, "transaction %d not found", id)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load transaction", err)
	}
	return t, nil
}

// GetTransaction fetches one transaction, verifying the caller owns its
// account.
func (c *Core) GetTransaction(ownerID, id int64) (*Transaction, error) {
	row := c.db.QueryRow("SELECT "+transactionColumns+transactionJoins+" WHERE t.id = ?", id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeNotFound, "transaction %d not found", id)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load transaction", err)
	}
	if _, err := c.GetAccount(ownerID, t.AccountID); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTransactions lists the caller's transactions, newest first.
func (c *Core) GetTransactions(ownerID int64, filter TransactionFilter) ([]Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := "SELECT " + transactionColumns + transactionJoins +
		" JOIN accounts a ON a.id = t.account_id WHERE a.user_id = ?"
	params := []any{ownerID}

	if filter.AccountID > 0 {
		query += " AND t.account_id = ?"
		params = append(params, filter.AccountID)
	}
	if filter.StartDate != "" {
		query += " AND t.date >= ?"
		params = append(params, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND t.date <= ?"
		params = append(params, filter.EndDate)
	}
	query += " ORDER BY t.date DESC, t.id DESC LIMIT ? OFFSET ?"
	params = append(params, limit, offset)

	rows, err := c.db.Query(query, params...)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list transactions", err)
	}
	defer rows.Close()

	var results []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan transaction", err)
		}
		results = append(results, *t)
	}
	return results, rows.Err()
}
