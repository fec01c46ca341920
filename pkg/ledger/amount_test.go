package ledger

import (
	"encoding/json"
	"testing"
)

func TestAmountArithmetic(t *testing.T) {
	a := NewAmount(0.1)
	b := NewAmount(0.2)
	// Decimal arithmetic is exact where float64 is not.
	if got := a.Add(b).Float64(); got != 0.3 {
		t.Errorf("0.1 + 0.2 = %v, want 0.3", got)
	}
	if got := NewAmount(50).Neg().Float64(); got != -50 {
		t.Errorf("Neg = %v, want -50", got)
	}
	if got := NewAmount(10.456).Round2().Float64(); got != 10.46 {
		t.Errorf("Round2 = %v, want 10.46", got)
	}
}

func TestAmountApplyReverseRoundTrip(t *testing.T) {
	balance := NewAmount(123.45)
	delta := NewAmount(67.89)
	after := balance.Add(delta).Sub(delta)
	if !after.Equal(balance.Decimal) {
		t.Errorf("apply-then-reverse drifted: %v != %v", after, balance)
	}
}

func TestAmountJSON(t *testing.T) {
	data, err := json.Marshal(NewAmount(1234.5))
	assertNoError(t, err, "Marshal")
	if string(data) != "1234.5" {
		t.Errorf("expected bare number, got %s", data)
	}

	var a Amount
	assertNoError(t, json.Unmarshal([]byte("42.25"), &a), "Unmarshal number")
	assertFloatEquals(t, a.Float64(), 42.25, "number round-trip")

	assertNoError(t, json.Unmarshal([]byte(`"13.37"`), &a), "Unmarshal string")
	assertFloatEquals(t, a.Float64(), 13.37, "string round-trip")
}

func TestAmountScan(t *testing.T) {
	var a Amount
	assertNoError(t, a.Scan(float64(12.34)), "scan float")
	assertFloatEquals(t, a.Float64(), 12.34, "float value")

	assertNoError(t, a.Scan(int64(7)), "scan int")
	assertFloatEquals(t, a.Float64(), 7, "int value")

	assertNoError(t, a.Scan(nil), "scan nil")
	assertFloatEquals(t, a.Float64(), 0, "nil becomes zero")
}
