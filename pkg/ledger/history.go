package ledger

import "time"

// NetWorthHistory reconstructs a day-by-day net-worth series over the
// trailing window by replaying transaction deltas backward from the
// current, authoritative valuation. There is no snapshot table: the series
// is a pure function of current state plus the transaction log, so the
// operation is idempotent and restartable.
//
// Only cash flow is walked back. Every day in the window inherits the
// current mark-to-market valuation of holdings; intraday price drift before
// the anchor is deliberately not modeled.
func (c *Core) NetWorthHistory(ownerID int64, windowDays int) ([]NetWorthPoint, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	snapshot, err := c.Portfolio(ownerID)
	if err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -windowDays).Format(dateLayout)

	rows, err := c.db.Query(`
		SELECT t.date, tt.direction, t.amount
		FROM transactions t
		JOIN transaction_types tt ON tt.id = t.transaction_type_id
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = ? AND t.date >= ?
	`, ownerID, start)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list window transactions", err)
	}
	defer rows.Close()

	// Signed cash delta per calendar date.
	daily := map[string]Amount{}
	for rows.Next() {
		var date string
		var direction Direction
		var amount Amount
		if err := rows.Scan(&date, &direction, &amount); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan window transaction", err)
		}
		daily[date] = daily[date].Add(direction.Signed(amount))
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "list window transactions", err)
	}

	// Walk backward from today: emit the running value, then undo the
	// day's net flow to get yesterday's value.
	points := make([]NetWorthPoint, 0, windowDays+1)
	running := snapshot.NetWorth
	for i := 0; i <= windowDays; i++ {
		day := end.AddDate(0, 0, -i).Format(dateLayout)
		points = append(points, NetWorthPoint{Date: day, Value: running.Round2()})
		running = running.Sub(daily[day])
	}

	// Chronological order, oldest first.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
