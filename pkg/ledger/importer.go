package ledger

import (
	"log/slog"
	"math"
)

// ImportTransactions posts pre-parsed statement rows against one account.
// Row signs decide the transaction type: negative amounts map to the oldest
// seeded expense type, positive to the income one. Each row posts in its own
// transaction; a bad row is counted and skipped, never aborting the batch.
func (c *Core) ImportTransactions(ownerID, accountID int64, rows []ImportRow) (*ImportResult, error) {
	if _, err := c.GetAccount(ownerID, accountID); err != nil {
		return nil, err
	}

	expense, err := c.transactionTypeByDirection(DirectionOutflow)
	if err != nil {
		return nil, err
	}
	income, err := c.transactionTypeByDirection(DirectionInflow)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, row := range rows {
		typeID := income.ID
		if row.Amount < 0 {
			typeID = expense.ID
		}
		req := TransactionRequest{
			Date:              row.Date,
			Description:       row.Description,
			Amount:            NewAmount(math.Abs(row.Amount)),
			AccountID:         accountID,
			TransactionTypeID: typeID,
		}
		if _, err := c.CreateTransaction(ownerID, req); err != nil {
			c.logger.Warn("import row rejected",
				slog.Int("row", i),
				slog.String("date", row.Date),
				slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Added++
	}

	c.logger.Info("import finished",
		slog.Int64("account_id", accountID),
		slog.Int("added", result.Added),
		slog.Int("errors", result.Errors))
	return result, nil
}
