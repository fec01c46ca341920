package api

import "moneymap/pkg/ledger"

type addAccountPayload struct {
	Name          string `json:"name"`
	AccountTypeID int64  `json:"account_type_id"`
	CurrencyCode  string `json:"currency_code"`
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

func (p transactionPayload) toRequest() ledger.TransactionRequest {
	return ledger.TransactionRequest{
		Date:              p.Date,
		Description:       p.Description,
		Amount:            p.Amount,
		AccountID:         p.AccountID,
		TransactionTypeID: p.TransactionTypeID,
		SubCategoryID:     p.SubCategoryID,
		AssetSymbol:       p.AssetSymbol,
		Quantity:          p.Quantity,
		PricePerUnit:      p.PricePerUnit,
	}
}

type importPayload struct {
	AccountID int64              `json:"account_id"`
	Rows      []ledger.ImportRow `json:"rows"`
}

type transactionTypePayload struct {
	Name         string           `json:"name"`
	Direction    ledger.Direction `json:"direction"`
	IsInvestment bool             `json:"is_investment"`
}

type categoryPayload struct {
	Name string `json:"name"`
}

type assetPayload struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
}

type pricePayload struct {
	Symbol     string  `json:"symbol"`
	Date       string  `json:"date"`
	ClosePrice float64 `json:"close_price"`
}
