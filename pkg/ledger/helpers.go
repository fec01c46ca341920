package ledger

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func todayISO() string {
	return time.Now().Format(dateLayout)
}

func isValidDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func floatPtr(v float64) *float64 {
	return &v
}
