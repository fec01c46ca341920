package ledger

import "testing"

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Direction
	}{
		{"Despesa", DirectionOutflow},
		{"Despesa Mensal", DirectionOutflow},
		{"Expense", DirectionOutflow},
		{"Levantamento", DirectionOutflow},
		{"Compra Ativo", DirectionOutflow},
		{"Buy", DirectionOutflow},
		{"Saída", DirectionOutflow},
		{"Receita", DirectionInflow},
		{"Venda Ativo", DirectionInflow},
		{"Salário", DirectionInflow},
		{"", DirectionInflow},
		// Matching is case-sensitive: lowercase keywords do not count.
		{"despesa", DirectionInflow},
		{"compra", DirectionInflow},
	}
	for _, tc := range tests {
		if got := ClassifyLabel(tc.label); got != tc.want {
			t.Errorf("ClassifyLabel(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

func TestDirectionSigned(t *testing.T) {
	a := NewAmount(50)
	if got := DirectionOutflow.Signed(a).Float64(); got != -50 {
		t.Errorf("outflow signed = %f, want -50", got)
	}
	if got := DirectionInflow.Signed(a).Float64(); got != 50 {
		t.Errorf("inflow signed = %f, want 50", got)
	}
}

func TestDirectionValid(t *testing.T) {
	if !DirectionOutflow.Valid() || !DirectionInflow.Valid() {
		t.Error("known directions should be valid")
	}
	if Direction("sideways").Valid() {
		t.Error("unknown direction should be invalid")
	}
}

func TestSeededTypeDirections(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	types, err := core.GetTransactionTypes()
	assertNoError(t, err, "GetTransactionTypes")

	want := map[string]struct {
		direction    Direction
		isInvestment bool
	}{
		"Despesa":      {DirectionOutflow, false},
		"Receita":      {DirectionInflow, false},
		"Compra Ativo": {DirectionOutflow, true},
		"Venda Ativo":  {DirectionInflow, true},
	}
	if len(types) != len(want) {
		t.Fatalf("expected %d seeded types, got %d", len(want), len(types))
	}
	for _, tt := range types {
		w, ok := want[tt.Name]
		if !ok {
			t.Errorf("unexpected seeded type %q", tt.Name)
			continue
		}
		if tt.Direction != w.direction {
			t.Errorf("%s: direction = %s, want %s", tt.Name, tt.Direction, w.direction)
		}
		if tt.IsInvestment != w.isInvestment {
			t.Errorf("%s: is_investment = %v, want %v", tt.Name, tt.IsInvestment, w.isInvestment)
		}
	}
}
