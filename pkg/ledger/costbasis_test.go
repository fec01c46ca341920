package ledger

import "testing"

func TestApplyBuy_WeightedAverage(t *testing.T) {
	h := &Holding{}
	applyBuy(h, 1, 20000)
	assertFloatEquals(t, h.Quantity, 1, "quantity after first buy")
	assertFloatEquals(t, h.AvgBuyPrice, 20000, "avg after first buy")

	applyBuy(h, 1, 40000)
	assertFloatEquals(t, h.Quantity, 2, "quantity after second buy")
	assertFloatEquals(t, h.AvgBuyPrice, 30000, "avg after second buy")
}

func TestApplySell_LeavesAverageUntouched(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	h := &Holding{Quantity: 2, AvgBuyPrice: 30000}
	applySell(core.logger, h, 0.5)
	assertFloatEquals(t, h.Quantity, 1.5, "quantity after sell")
	assertFloatEquals(t, h.AvgBuyPrice, 30000, "avg unchanged by sell")
}

func TestApplySell_OversellClampsToZero(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	h := &Holding{Quantity: 1, AvgBuyPrice: 100}
	applySell(core.logger, h, 5)
	assertFloatEquals(t, h.Quantity, 0, "oversell clamps to zero")
}

func TestReverseBuy_QuantityOnly(t *testing.T) {
	h := &Holding{Quantity: 2, AvgBuyPrice: 30000}
	reverseBuy(h, 1)
	assertFloatEquals(t, h.Quantity, 1, "quantity after reverse")
	// The blended average stays; prior averages are not recoverable.
	assertFloatEquals(t, h.AvgBuyPrice, 30000, "avg stays blended")

	reverseBuy(h, 5)
	assertFloatEquals(t, h.Quantity, 0, "reverse clamps at zero")
}

func TestReverseSell(t *testing.T) {
	h := &Holding{Quantity: 1, AvgBuyPrice: 100}
	reverseSell(h, 2)
	assertFloatEquals(t, h.Quantity, 3, "quantity after reverse sell")
}

func TestResolveUnitPrice(t *testing.T) {
	explicit := 42.0
	assertFloatEquals(t, resolveUnitPrice(NewAmount(100), 2, &explicit), 42, "explicit price wins")
	assertFloatEquals(t, resolveUnitPrice(NewAmount(100), 2, nil), 50, "fallback amount/qty")
	assertFloatEquals(t, resolveUnitPrice(NewAmount(100), 0, nil), 0, "zero qty yields zero")
}

func TestCostBasis_ThroughTransactions(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testBuy(t, core, 1, accountID, "BTC", 20000, 1)
	testBuy(t, core, 1, accountID, "BTC", 40000, 1)

	h := findHolding(t, core, 1, "BTC")
	assertFloatEquals(t, h.Quantity, 2, "quantity after two buys")
	assertFloatEquals(t, h.AvgBuyPrice, 30000, "weighted average")

	testSell(t, core, 1, accountID, "BTC", 35000, 1)
	h = findHolding(t, core, 1, "BTC")
	assertFloatEquals(t, h.Quantity, 1, "quantity after sell")
	assertFloatEquals(t, h.AvgBuyPrice, 30000, "average survives sell")

	assertFloatEquals(t, accountBalance(t, core, 1, accountID), -25000, "cash after buys and sell")
}

func TestCostBasis_OversellThroughTransaction(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testBuy(t, core, 1, accountID, "BTC", 100, 1)
	testSell(t, core, 1, accountID, "BTC", 500, 5)

	h := findHolding(t, core, 1, "BTC")
	assertFloatEquals(t, h.Quantity, 0, "oversell clamped")
	// Cash still moves by the full sale proceeds.
	assertFloatEquals(t, accountBalance(t, core, 1, accountID), 400, "cash after oversell")
}

func TestCostBasis_HoldingSurvivesFullSell(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testBuy(t, core, 1, accountID, "BTC", 100, 1)
	testSell(t, core, 1, accountID, "BTC", 120, 1)

	// The row stays at zero quantity instead of being deleted.
	h := findHolding(t, core, 1, "BTC")
	assertFloatEquals(t, h.Quantity, 0, "zero-quantity row kept")
}

func TestCostBasis_SameSymbolNormalized(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Broker")
	testBuy(t, core, 1, accountID, "BTC", 100, 1)

	tx, err := core.CreateTransaction(1, TransactionRequest{
		Amount:            NewAmount(100),
		AccountID:         accountID,
		TransactionTypeID: typeID(t, core, "Compra Ativo"),
		AssetSymbol:       " btc ",
		Quantity:          floatPtr(1),
	})
	assertNoError(t, err, "buy with unnormalized symbol")
	if tx.AssetSymbol == nil || *tx.AssetSymbol != "BTC" {
		t.Errorf("expected normalized symbol BTC, got %v", tx.AssetSymbol)
	}

	h := findHolding(t, core, 1, "BTC")
	assertFloatEquals(t, h.Quantity, 2, "both buys landed on one holding")
}
