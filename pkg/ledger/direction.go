package ledger

import "strings"

// Direction is the cash-flow direction of a transaction type. It is stored
// on the transaction_types table; the amount on a transaction is always a
// magnitude and the sign is computed at application time from the direction.
type Direction string

const (
	DirectionOutflow Direction = "outflow"
	DirectionInflow  Direction = "inflow"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionOutflow || d == DirectionInflow
}

// Signed applies the direction to a magnitude: outflow negates, inflow
// passes through.
func (d Direction) Signed(a Amount) Amount {
	if d == DirectionOutflow {
		return a.Neg()
	}
	return a
}

// outflowKeywords is the legacy keyword set used to infer direction from a
// type label. Match is case-sensitive substring, so "Despesa Mensal" and
// "Compra Ativo" both classify as outflows.
var outflowKeywords = []string{"Despesa", "Expense", "Levantamento", "Compra", "Buy", "Saída"}

// ClassifyLabel maps a transaction-type label to a direction. Labels that
// match no outflow keyword default to inflow. The classification is a pure
// function of the label; it never looks at amounts. New types store an
// explicit direction instead, with this mapping as the seed.
func ClassifyLabel(label string) Direction {
	for _, keyword := range outflowKeywords {
		if strings.Contains(label, keyword) {
			return DirectionOutflow
		}
	}
	return DirectionInflow
}
