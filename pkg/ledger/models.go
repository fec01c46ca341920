package ledger

// AccountType is a seeded account classification ("Conta à Ordem", ...).
type AccountType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Account is a cash account owned by a user. CurrentBalance is derived
// state: it is only ever mutated by the transaction lifecycle operations and
// always equals the sum of signed effects of the transactions posted against
// the account.
type Account struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	Name           string  `json:"name"`
	AccountTypeID  int64   `json:"account_type_id"`
	CurrencyCode   string  `json:"currency_code"`
	CurrentBalance Amount  `json:"current_balance"`
	CreatedAt      *string `json:"created_at,omitempty"`
}

// TransactionType labels a transaction and fixes its cash-flow direction.
type TransactionType struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Direction    Direction `json:"direction"`
	IsInvestment bool      `json:"is_investment"`
}

// Category groups spending. UserID is nil for global categories.
type Category struct {
	ID     int64  `json:"id"`
	UserID *int64 `json:"user_id,omitempty"`
	Name   string `json:"name"`
}

// SubCategory is a child of a Category; transactions link to subcategories.
type SubCategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

// Asset is a tradable instrument (AAPL, BTC, ...).
type Asset struct {
	ID        int64   `json:"id"`
	Symbol    string  `json:"symbol"`
	Name      *string `json:"name,omitempty"`
	AssetType string  `json:"asset_type"`
}

// PriceObservation is one appended close price for an asset. The series is
// append-only; the latest observation wins, with insertion order breaking
// same-date ties.
type PriceObservation struct {
	ID         int64   `json:"id"`
	AssetID    int64   `json:"asset_id"`
	Symbol     string  `json:"symbol"`
	Date       string  `json:"date"`
	ClosePrice float64 `json:"close_price"`
}

// Holding is the live position of one asset within one account. At most one
// row exists per (account, asset) pair. Rows are created lazily on first buy
// and kept at zero quantity after a full sell, for history.
type Holding struct {
	ID          int64   `json:"id"`
	AccountID   int64   `json:"account_id"`
	AssetID     int64   `json:"asset_id"`
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	AvgBuyPrice float64 `json:"avg_buy_price"`
}

// Transaction is one posted ledger entry. Amount is a magnitude; the sign is
// derived from the type's direction. The optional asset leg carries the
// instrument, quantity and unit price of an investment trade.
type Transaction struct {
	ID                int64     `json:"id"`
	Date              string    `json:"date"`
	Description       string    `json:"description"`
	Amount            Amount    `json:"amount"`
	AccountID         int64     `json:"account_id"`
	TransactionTypeID int64     `json:"transaction_type_id"`
	TypeName          string    `json:"type_name"`
	Direction         Direction `json:"direction"`
	IsInvestment      bool      `json:"is_investment"`
	SubCategoryID     *int64    `json:"sub_category_id,omitempty"`
	AssetID           *int64    `json:"asset_id,omitempty"`
	AssetSymbol       *string   `json:"asset_symbol,omitempty"`
	Quantity          *float64  `json:"quantity,omitempty"`
	PricePerUnit      *float64  `json:"price_per_unit,omitempty"`
	CreatedAt         *string   `json:"created_at,omitempty"`
	UpdatedAt         *string   `json:"updated_at,omitempty"`
}

// TransactionRequest defines the inputs to create or replace a transaction.
type TransactionRequest struct {
	Date              string
	Description       string
	Amount            Amount
	AccountID         int64
	TransactionTypeID int64
	SubCategoryID     *int64
	AssetSymbol       string
	Quantity          *float64
	PricePerUnit      *float64
}

// TransactionFilter controls transaction listing.
type TransactionFilter struct {
	AccountID int64
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// Position is one consolidated portfolio row: the same asset held across
// several accounts of one user reports as a single position.
type Position struct {
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	AvgBuyPrice  float64 `json:"avg_buy_price"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"total_value"`
	UnrealizedPL float64 `json:"profit_loss"`
}

// PortfolioSnapshot is the current valuation of a user's accounts and
// holdings.
type PortfolioSnapshot struct {
	TotalCash     Amount     `json:"total_cash"`
	TotalInvested Amount     `json:"total_invested"`
	NetWorth      Amount     `json:"total_net_worth"`
	Positions     []Position `json:"positions"`
}

// NetWorthPoint is one day in the reconstructed net-worth series.
type NetWorthPoint struct {
	Date  string `json:"date"`
	Value Amount `json:"value"`
}

// CategorySpending is the aggregated outflow for one category.
type CategorySpending struct {
	Name  string `json:"name"`
	Value Amount `json:"value"`
}

// ImportRow is one pre-parsed statement row handed in by the import
// collaborator. Amount arrives signed: negative rows become expenses,
// positive rows income.
type ImportRow struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ImportResult tallies a bulk import. Imports succeed partially by contract;
// each row is still all-or-nothing.
type ImportResult struct {
	Added  int `json:"added"`
	Errors int `json:"errors"`
}
