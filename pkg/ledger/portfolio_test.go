package ledger

import "testing"

func TestPortfolio_Empty(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	snap, err := core.Portfolio(1)
	assertNoError(t, err, "Portfolio")
	assertFloatEquals(t, snap.TotalCash.Float64(), 0, "empty cash")
	assertFloatEquals(t, snap.NetWorth.Float64(), 0, "empty net worth")
	if len(snap.Positions) != 0 {
		t.Errorf("expected no positions, got %d", len(snap.Positions))
	}
}

func TestPortfolio_MarkToMarket(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testIncome(t, core, 1, accountID, 100000)
	testBuy(t, core, 1, accountID, "BTC", 20000, 1)
	testBuy(t, core, 1, accountID, "BTC", 40000, 1)

	_, err := core.RecordPrice("BTC", "2025-06-01", 50000)
	assertNoError(t, err, "RecordPrice")

	snap, err := core.Portfolio(1)
	assertNoError(t, err, "Portfolio")
	assertFloatEquals(t, snap.TotalCash.Float64(), 40000, "cash after buys")
	assertFloatEquals(t, snap.TotalInvested.Float64(), 100000, "marked value")
	assertFloatEquals(t, snap.NetWorth.Float64(), 140000, "net worth")

	if len(snap.Positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(snap.Positions))
	}
	p := snap.Positions[0]
	assertFloatEquals(t, p.Quantity, 2, "position quantity")
	assertFloatEquals(t, p.AvgBuyPrice, 30000, "position avg")
	assertFloatEquals(t, p.CurrentPrice, 50000, "position price")
	assertFloatEquals(t, p.MarketValue, 100000, "market value")
	assertFloatEquals(t, p.UnrealizedPL, 40000, "unrealized P&L")
}

func TestPortfolio_ConsolidatesAcrossAccounts(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	first := testAccount(t, core, 1, "Broker A")
	second := testAccount(t, core, 1, "Broker B")
	testBuy(t, core, 1, first, "AAPL", 100, 1)
	testBuy(t, core, 1, second, "AAPL", 300, 1)

	snap, err := core.Portfolio(1)
	assertNoError(t, err, "Portfolio")
	if len(snap.Positions) != 1 {
		t.Fatalf("expected consolidated position, got %d rows", len(snap.Positions))
	}
	p := snap.Positions[0]
	assertFloatEquals(t, p.Quantity, 2, "consolidated quantity")
	// Cost-weighted across accounts: (1*100 + 1*300) / 2.
	assertFloatEquals(t, p.AvgBuyPrice, 200, "cost-weighted average")
}

func TestPortfolio_MissingPriceFallsBackToCost(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testBuy(t, core, 1, accountID, "XYZ", 500, 10)

	snap, err := core.Portfolio(1)
	assertNoError(t, err, "Portfolio")
	if len(snap.Positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(snap.Positions))
	}
	p := snap.Positions[0]
	assertFloatEquals(t, p.CurrentPrice, 50, "fallback to avg cost")
	assertFloatEquals(t, p.MarketValue, 500, "value at cost")
	assertFloatEquals(t, p.UnrealizedPL, 0, "zero P&L without a quote")
}

func TestPortfolio_DustPositionsExcluded(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testBuy(t, core, 1, accountID, "BTC", 100, 1)
	testSell(t, core, 1, accountID, "BTC", 120, 1)

	snap, err := core.Portfolio(1)
	assertNoError(t, err, "Portfolio")
	if len(snap.Positions) != 0 {
		t.Errorf("expected sold-out position excluded, got %d rows", len(snap.Positions))
	}
	assertFloatEquals(t, snap.TotalInvested.Float64(), 0, "no invested value")
}

func TestPortfolio_IgnoresOtherUsers(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	mine := testAccount(t, core, 1, "Mine")
	theirs := testAccount(t, core, 2, "Theirs")
	testIncome(t, core, 1, mine, 100)
	testIncome(t, core, 2, theirs, 900)
	testBuy(t, core, 2, theirs, "AAPL", 500, 1)

	snap, err := core.Portfolio(1)
	assertNoError(t, err, "Portfolio")
	assertFloatEquals(t, snap.TotalCash.Float64(), 100, "only own cash")
	if len(snap.Positions) != 0 {
		t.Errorf("foreign holdings leaked into portfolio")
	}
}

func TestPortfolio_PositionsSortedBySymbol(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testBuy(t, core, 1, accountID, "MSFT", 100, 1)
	testBuy(t, core, 1, accountID, "AAPL", 100, 1)

	snap, err := core.Portfolio(1)
	assertNoError(t, err, "Portfolio")
	if len(snap.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(snap.Positions))
	}
	if snap.Positions[0].Symbol != "AAPL" || snap.Positions[1].Symbol != "MSFT" {
		t.Errorf("positions out of order: %s, %s", snap.Positions[0].Symbol, snap.Positions[1].Symbol)
	}
}
