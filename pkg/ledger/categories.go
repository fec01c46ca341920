package ledger

import (
	"database/sql"
	"strings"
)

// GetCategories returns global categories plus the caller's own.
func (c *Core) GetCategories(ownerID int64) ([]Category, error) {
	rows, err := c.db.Query(`
		SELECT id, user_id, name FROM categories
		WHERE user_id IS NULL OR user_id = ?
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list categories", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		var userID sql.NullInt64
		if err := rows.Scan(&cat.ID, &userID, &cat.Name); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan category", err)
		}
		if userID.Valid {
			cat.UserID = &userID.Int64
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// AddCategory creates a personal category for ownerID.
func (c *Core) AddCategory(ownerID int64, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(ErrCodeInvalidInput, "category name is required")
	}
	result, err := c.db.Exec("INSERT INTO categories (user_id, name) VALUES (?, ?)", ownerID, name)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert category", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert category", err)
	}
	return &Category{ID: id, UserID: &ownerID, Name: name}, nil
}

// AddSubCategory creates a subcategory under a category the caller can use:
// either a global one or their own.
func (c *Core) AddSubCategory(ownerID, categoryID int64, name string) (*SubCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(ErrCodeInvalidInput, "subcategory name is required")
	}

	var parentUserID sql.NullInt64
	err := c.db.QueryRow("SELECT user_id FROM categories WHERE id = ?", categoryID).Scan(&parentUserID)
	if err == sql.ErrNoRows {
		return nil, NewErrorf(ErrCodeNotFound, "category %d not found", categoryID)
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "load category", err)
	}
	if parentUserID.Valid && parentUserID.Int64 != ownerID {
		return nil, NewErrorf(ErrCodePermissionDenied, "category %d is not owned by caller", categoryID)
	}

	result, err := c.db.Exec("INSERT INTO sub_categories (category_id, name) VALUES (?, ?)", categoryID, name)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert subcategory", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "insert subcategory", err)
	}
	return &SubCategory{ID: id, CategoryID: categoryID, Name: name}, nil
}

// GetSubCategories lists the subcategories of one category.
func (c *Core) GetSubCategories(categoryID int64) ([]SubCategory, error) {
	rows, err := c.db.Query(
		"SELECT id, category_id, name FROM sub_categories WHERE category_id = ? ORDER BY id",
		categoryID,
	)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "list subcategories", err)
	}
	defer rows.Close()

	var subs []SubCategory
	for rows.Next() {
		var sub SubCategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan subcategory", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeleteSubCategory removes a subcategory. Subcategories with posted
// transactions are refused.
func (c *Core) DeleteSubCategory(ownerID, id int64) error {
	var categoryID int64
	err := c.db.QueryRow("SELECT category_id FROM sub_categories WHERE id = ?", id).Scan(&categoryID)
	if err == sql.ErrNoRows {
		return NewErrorf(ErrCodeNotFound, "subcategory %d not found", id)
	}
	if err != nil {
		return WrapError(ErrCodeDatabase, "load subcategory", err)
	}

	var parentUserID sql.NullInt64
	if err := c.db.QueryRow("SELECT user_id FROM categories WHERE id = ?", categoryID).Scan(&parentUserID); err != nil {
		return WrapError(ErrCodeDatabase, "load category", err)
	}
	if parentUserID.Valid && parentUserID.Int64 != ownerID {
		return NewErrorf(ErrCodePermissionDenied, "subcategory %d is not owned by caller", id)
	}

	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM transactions WHERE sub_category_id = ?", id).Scan(&count); err != nil {
		return WrapError(ErrCodeDatabase, "count subcategory transactions", err)
	}
	if count > 0 {
		return NewError(ErrCodeInvalidInput, "subcategory has transactions and cannot be deleted")
	}

	if _, err := c.db.Exec("DELETE FROM sub_categories WHERE id = ?", id); err != nil {
		return WrapError(ErrCodeDatabase, "delete subcategory", err)
	}
	return nil
}
