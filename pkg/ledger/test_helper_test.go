package ledger

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestDB creates a temporary database for testing and returns a Core
// instance. The caller should defer cleanup() to remove the temp file.
func setupTestDB(t *testing.T) (*Core, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "ledger-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	core, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open test db: %v", err)
	}

	cleanup := func() {
		core.Close()
		os.RemoveAll(tmpDir)
	}

	return core, cleanup
}

// testAccount creates an account of the first seeded type and returns its ID.
func testAccount(t *testing.T, core *Core, ownerID int64, name string) int64 {
	t.Helper()
	acc, err := core.AddAccount(ownerID, name, 1, "EUR")
	if err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return acc.ID
}

// typeID looks up a seeded transaction type by name.
func typeID(t *testing.T, core *Core, name string) int64 {
	t.Helper()
	types, err := core.GetTransactionTypes()
	if err != nil {
		t.Fatalf("failed to list transaction types: %v", err)
	}
	for _, tt := range types {
		if tt.Name == name {
			return tt.ID
		}
	}
	t.Fatalf("transaction type %q not seeded", name)
	return 0
}

// testExpense posts an expense (outflow, no investment leg) and returns the
// transaction ID.
func testExpense(t *testing.T, core *Core, ownerID, accountID int64, amount float64) int64 {
	t.Helper()
	tx, err := core.CreateTransaction(ownerID, TransactionRequest{
		Description:       "test expense",
		Amount:            NewAmount(amount),
		AccountID:         accountID,
		TransactionTypeID: typeID(t, core, "Despesa"),
	})
	if err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return tx.ID
}

// testIncome posts an income (inflow, no investment leg).
func testIncome(t *testing.T, core *Core, ownerID, accountID int64, amount float64) int64 {
	t.Helper()
	tx, err := core.CreateTransaction(ownerID, TransactionRequest{
		Description:       "test income",
		Amount:            NewAmount(amount),
		AccountID:         accountID,
		TransactionTypeID: typeID(t, core, "Receita"),
	})
	if err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return tx.ID
}

// testBuy posts an asset purchase for the given total amount and quantity.
func testBuy(t *testing.T, core *Core, ownerID, accountID int64, symbol string, amount, qty float64) int64 {
	t.Helper()
	tx, err := core.CreateTransaction(ownerID, TransactionRequest{
		Description:       "test buy",
		Amount:            NewAmount(amount),
		AccountID:         accountID,
		TransactionTypeID: typeID(t, core, "Compra Ativo"),
		AssetSymbol:       symbol,
		Quantity:          &qty,
	})
	if err != nil {
		t.Fatalf("failed to create test buy: %v", err)
	}
	return tx.ID
}

// testSell posts an asset sale for the given total amount and quantity.
func testSell(t *testing.T, core *Core, ownerID, accountID int64, symbol string, amount, qty float64) int64 {
	t.Helper()
	tx, err := core.CreateTransaction(ownerID, TransactionRequest{
		Description:       "test sell",
		Amount:            NewAmount(amount),
		AccountID:         accountID,
		TransactionTypeID: typeID(t, core, "Venda Ativo"),
		AssetSymbol:       symbol,
		Quantity:          &qty,
	})
	if err != nil {
		t.Fatalf("failed to create test sell: %v", err)
	}
	return tx.ID
}

// accountBalance reads the cached balance of an account.
func accountBalance(t *testing.T, core *Core, ownerID, accountID int64) float64 {
	t.Helper()
	acc, err := core.GetAccount(ownerID, accountID)
	if err != nil {
		t.Fatalf("failed to load account: %v", err)
	}
	return acc.CurrentBalance.Float64()
}

// findHolding returns the holding for a symbol, failing if absent.
func findHolding(t *testing.T, core *Core, ownerID int64, symbol string) Holding {
	t.Helper()
	holdings, err := core.GetHoldings(ownerID)
	if err != nil {
		t.Fatalf("failed to list holdings: %v", err)
	}
	for _, h := range holdings {
		if h.Symbol == symbol {
			return h
		}
	}
	t.Fatalf("no holding for symbol %s", symbol)
	return Holding{}
}

// floatEquals checks if two floats are approximately equal.
func floatEquals(a, b, epsilon float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

// assertFloatEquals fails the test if the floats are not approximately equal.
func assertFloatEquals(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if !floatEquals(got, want, 0.001) {
		t.Errorf("%s: got %.4f, want %.4f", msg, got, want)
	}
}

// assertNoError fails the test if err is not nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

// assertError fails the test if err is nil.
func assertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error but got nil", msg)
	}
}

// assertErrorCode fails the test unless err carries the given code.
func assertErrorCode(t *testing.T, err error, code ErrorCode, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected %s error but got nil", msg, code)
	}
	if !IsErrorCode(err, code) {
		t.Errorf("%s: expected code %s, got error: %v", msg, code, err)
	}
}
