package ledger

// SpendingByCategory aggregates outflow magnitudes by parent category for
// the caller's accounts. Transactions without a subcategory are excluded;
// inflows never count, regardless of category.
func (c *Core) SpendingByCategory(ownerID int64) ([]CategorySpending, error) {
	rows, err := c.db.Query(`
		SELECT cat.name, SUM(t.amount) AS total
		FROM transactions t
		JOIN transaction_types tt ON tt.id = t.transaction_type_id
		JOIN sub_categories sc ON sc.id = t.sub_category_id
		JOIN categories cat ON cat.id = sc.category_id
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = ? AND tt.direction = 'outflow'
		GROUP BY cat.name
		ORDER BY total DESC
	`, ownerID)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "spending by category", err)
	}
	defer rows.Close()

	var results []CategorySpending
	for rows.Next() {
		var entry CategorySpending
		if err := rows.Scan(&entry.Name, &entry.Value); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan spending", err)
		}
		results = append(results, entry)
	}
	return results, rows.Err()
}
