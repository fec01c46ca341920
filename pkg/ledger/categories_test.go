package ledger

import "testing"

func TestAddCategory_AndList(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	cat, err := core.AddCategory(1, "Comida")
	assertNoError(t, err, "AddCategory")
	if cat.UserID == nil || *cat.UserID != 1 {
		t.Errorf("expected personal category for user 1, got %v", cat.UserID)
	}

	_, err = core.AddCategory(2, "Transporte")
	assertNoError(t, err, "AddCategory other user")

	mine, err := core.GetCategories(1)
	assertNoError(t, err, "GetCategories")
	for _, c := range mine {
		if c.UserID != nil && *c.UserID != 1 {
			t.Errorf("foreign category %q leaked into listing", c.Name)
		}
	}
}

func TestAddCategory_BlankName(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := core.AddCategory(1, "   ")
	assertErrorCode(t, err, ErrCodeInvalidInput, "blank category name")
}

func TestAddSubCategory_OwnershipEnforced(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	cat, err := core.AddCategory(1, "Comida")
	assertNoError(t, err, "AddCategory")

	sub, err := core.AddSubCategory(1, cat.ID, "Pizza")
	assertNoError(t, err, "AddSubCategory own")
	if sub.CategoryID != cat.ID {
		t.Errorf("subcategory parent = %d, want %d", sub.CategoryID, cat.ID)
	}

	_, err = core.AddSubCategory(2, cat.ID, "Sushi")
	assertErrorCode(t, err, ErrCodePermissionDenied, "foreign parent")

	_, err = core.AddSubCategory(1, 999, "Pizza")
	assertErrorCode(t, err, ErrCodeNotFound, "missing parent")
}

func TestGetSubCategories(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	cat, err := core.AddCategory(1, "Comida")
	assertNoError(t, err, "AddCategory")
	_, err = core.AddSubCategory(1, cat.ID, "Pizza")
	assertNoError(t, err, "AddSubCategory")
	_, err = core.AddSubCategory(1, cat.ID, "Mercearia")
	assertNoError(t, err, "AddSubCategory")

	subs, err := core.GetSubCategories(cat.ID)
	assertNoError(t, err, "GetSubCategories")
	if len(subs) != 2 {
		t.Errorf("expected 2 subcategories, got %d", len(subs))
	}
}

func TestDeleteSubCategory(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	cat, err := core.AddCategory(1, "Comida")
	assertNoError(t, err, "AddCategory")
	sub, err := core.AddSubCategory(1, cat.ID, "Pizza")
	assertNoError(t, err, "AddSubCategory")

	assertErrorCode(t, core.DeleteSubCategory(2, sub.ID), ErrCodePermissionDenied, "foreign delete")
	assertErrorCode(t, core.DeleteSubCategory(1, 999), ErrCodeNotFound, "missing subcategory")

	assertNoError(t, core.DeleteSubCategory(1, sub.ID), "DeleteSubCategory")
	subs, err := core.GetSubCategories(cat.ID)
	assertNoError(t, err, "GetSubCategories")
	if len(subs) != 0 {
		t.Errorf("expected subcategory gone, got %d", len(subs))
	}
}

func TestDeleteSubCategory_RefusedWhenReferenced(t *testing.T) {
	core, cleanup := setupTestDB(t)
	defer cleanup()

	accountID := testAccount(t, core, 1, "Checking")
	cat, err := core.AddCategory(1, "Comida")
	assertNoError(t, err, "AddCategory")
	sub, err := core.AddSubCategory(1, cat.ID, "Pizza")
	assertNoError(t, err, "AddSubCategory")

	_, err = core.CreateTransaction(1, TransactionRequest{
		Amount:            NewAmount(15),
		AccountID:         accountID,
		TransactionTypeID: typeID(t, core, "Despesa"),
		SubCategoryID:     &sub.ID,
	})
	assertNoError(t, err, "CreateTransaction")

	assertErrorCode(t, core.DeleteSubCategory(1, sub.ID), ErrCodeInvalidInput, "delete referenced subcategory")
}
