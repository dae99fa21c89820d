package services

import (
	"strings"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
	"fintrack/internal/uuid"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Groceries")
		testutil.AssertNoError(t, err)
		if category.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if category.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", category.Name)
		}
		if category.UserID != user.ID {
			t.Errorf("expected owner %s, got %s", user.ID, category.UserID)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("whitespace_only_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("name_too_long", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, strings.Repeat("x", 51))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name_same_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Rent")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Rent")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("uniqueness_is_case_sensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "food")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Food")
		testutil.AssertNoError(t, err)
	})

	t.Run("name_of_deleted_category_is_free", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Food")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, category.ID))

		recreated, err := svc.CreateCategory(user.ID, "Food")
		testutil.AssertNoError(t, err)
		if recreated.ID == category.ID {
			t.Error("expected a fresh category, not the deleted row")
		}
	})

	t.Run("same_name_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(alice.ID, "Travel")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(bob.ID, "Travel")
		testutil.AssertNoError(t, err)
	})
}

func TestRenameCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Grocries")

		renamed, err := svc.RenameCategory(user.ID, category.ID, "Groceries")
		testutil.AssertNoError(t, err)
		if renamed.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", renamed.Name)
		}

		fetched, err := svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertNoError(t, err)
		if fetched.Name != "Groceries" {
			t.Errorf("rename not persisted, got %s", fetched.Name)
		}
	})

	t.Run("rename_to_own_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Bills")

		_, err := svc.RenameCategory(user.ID, category.ID, "Bills")
		testutil.AssertNoError(t, err)
	})

	t.Run("rename_to_existing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Rent")
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Utilities")

		_, err := svc.RenameCategory(user.ID, category.ID, "Rent")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.RenameCategory(user.ID, uuid.New(), "Anything")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, alice.ID)

		_, err := svc.RenameCategory(bob.ID, category.ID, "Hijacked")
		testutil.AssertAppError(t, err, "FORBIDDEN")

		// The owner's view must be unchanged.
		fetched, err := svc.GetCategoryByID(alice.ID, category.ID)
		testutil.AssertNoError(t, err)
		if fetched.Name != category.Name {
			t.Errorf("expected name %s, got %s", category.Name, fetched.Name)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unreferenced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, category.ID))

		_, err := svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("referenced_by_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Dining")
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, "12.00")
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, "8.50")

		err := svc.DeleteCategory(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")
		if !strings.Contains(err.Error(), "2 transaction(s)") {
			t.Errorf("expected transaction count in message, got %q", err.Error())
		}

		// The category must survive the rejected delete.
		_, err = svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteCategory(user.ID, uuid.New())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, alice.ID)

		err := svc.DeleteCategory(bob.ID, category.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("ordered_with_counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		rent := testutil.CreateTestCategoryWithName(t, db, user.ID, "Rent")
		dining := testutil.CreateTestCategoryWithName(t, db, user.ID, "Dining")
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Travel")

		testutil.CreateTestTransaction(t, db, user.ID, rent.ID, models.TransactionTypeExpense, "900.00")
		testutil.CreateTestTransaction(t, db, user.ID, dining.ID, models.TransactionTypeExpense, "30.00")
		testutil.CreateTestTransaction(t, db, user.ID, dining.ID, models.TransactionTypeExpense, "15.00")

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)

		if len(categories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(categories))
		}
		wantNames := []string{"Dining", "Rent", "Travel"}
		wantCounts := []int64{2, 1, 0}
		for i, c := range categories {
			if c.Name != wantNames[i] {
				t.Errorf("position %d: expected %s, got %s", i, wantNames[i], c.Name)
			}
			if c.TransactionCount != wantCounts[i] {
				t.Errorf("%s: expected count %d, got %d", c.Name, wantCounts[i], c.TransactionCount)
			}
		}
	})

	t.Run("isolated_per_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategoryWithName(t, db, alice.ID, "Alice Only")
		testutil.CreateTestCategoryWithName(t, db, bob.ID, "Bob Only")

		categories, err := svc.GetUserCategories(alice.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(categories))
		}
		if categories[0].Name != "Alice Only" {
			t.Errorf("expected Alice Only, got %s", categories[0].Name)
		}
	})

	t.Run("empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("expected no categories, got %d", len(categories))
		}
	})
}
