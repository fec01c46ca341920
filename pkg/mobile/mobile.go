// Package mobile wraps the ledger core for gomobile bindings. Every method
// takes and returns JSON strings, the lowest common denominator across the
// generated Java and Objective-C bridges.
package mobile

import (
	"encoding/json"

	"moneymap/pkg/ledger"
)

// Core wraps the MoneyMap ledger for gomobile bindings.
type Core struct {
	core *ledger.Core
}

// Open initializes the core with a database path.
func Open(dbPath string) (*Core, error) {
	core, err := ledger.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &Core{core: core}, nil
}

// Close releases resources.
func (c *Core) Close() error {
	if c == nil || c.core == nil {
		return nil
	}
	return c.core.Close()
}

// GetAccountsJSON returns the user's accounts as JSON.
func (c *Core) GetAccountsJSON(userID int64) (string, error) {
	data, err := c.core.GetAccounts(userID)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// AddAccountJSON creates an account from JSON and returns it as JSON.
func (c *Core) AddAccountJSON(userID int64, payloadJSON string) (string, error) {
	var payload accountPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return "", err
	}
	account, err := c.core.AddAccount(userID, payload.Name, payload.AccountTypeID, payload.CurrencyCode)
	if err != nil {
		return "", err
	}
	return marshalJSON(account)
}

// GetTransactionsJSON queries the user's transactions with optional filter JSON.
func (c *Core) GetTransactionsJSON(userID int64, filterJSON string) (string, error) {
	var payload filterPayload
	if filterJSON != "" {
		if err := json.Unmarshal([]byte(filterJSON), &payload); err != nil {
			return "", err
		}
	}
	data, err := c.core.GetTransactions(userID, ledger.TransactionFilter{
		AccountID: payload.AccountID,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Limit:     payload.Limit,
		Offset:    payload.Offset,
	})
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// AddTransactionJSON posts a transaction from JSON and returns it as JSON.
func (c *Core) AddTransactionJSON(userID int64, payloadJSON string) (string, error) {
	var payload transactionPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return "", err
	}
	tx, err := c.core.CreateTransaction(userID, ledger.TransactionRequest{
		Date:              payload.Date,
		Description:       payload.Description,
		Amount:            payload.Amount,
		AccountID:         payload.AccountID,
		TransactionTypeID: payload.TransactionTypeID,
		SubCategoryID:     payload.SubCategoryID,
		AssetSymbol:       payload.AssetSymbol,
		Quantity:          payload.Quantity,
		PricePerUnit:      payload.PricePerUnit,
	})
	if err != nil {
		return "", err
	}
	return marshalJSON(tx)
}

// DeleteTransaction reverses and removes a transaction by id.
func (c *Core) DeleteTransaction(userID, id int64) error {
	return c.core.DeleteTransaction(userID, id)
}

// GetPortfolioJSON returns the current portfolio valuation as JSON.
func (c *Core) GetPortfolioJSON(userID int64) (string, error) {
	data, err := c.core.Portfolio(userID)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// GetNetWorthHistoryJSON returns the reconstructed net-worth series as JSON.
func (c *Core) GetNetWorthHistoryJSON(userID int64, days int) (string, error) {
	data, err := c.core.NetWorthHistory(userID, days)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// GetSpendingJSON returns spending aggregated by category as JSON.
func (c *Core) GetSpendingJSON(userID int64) (string, error) {
	data, err := c.core.SpendingByCategory(userID)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// RecordPrice appends a manual close-price observation.
func (c *Core) RecordPrice(symbol, date string, closePrice float64) error {
	_, err := c.core.RecordPrice(symbol, date, closePrice)
	return err
}

func marshalJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type accountPayload struct {
	Name          string `json:"name"`
	AccountTypeID int64  `json:"account_type_id"`
	CurrencyCode  string `json:"currency_code"`
}

type filterPayload struct {
	AccountID int64  `json:"account_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

type transactionPayload struct {
	Date              string        `json:"date"`
	Description       string        `json:"description"`
	Amount            ledger.Amount `json:"amount"`
	AccountID         int64         `json:"account_id"`
	TransactionTypeID int64         `json:"transaction_type_id"`
	SubCategoryID     *int64        `json:"sub_category_id"`
	AssetSymbol       string        `json:"asset_symbol"`
	Quantity          *float64      `json:"quantity"`
	PricePerUnit      *float64      `json:"price_per_unit"`
}
