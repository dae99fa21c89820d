package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func assertTotals(t *testing.T, totals *Totals, income, expenses, balance string) {
	t.Helper()
	if !totals.Income.Equal(decimal.RequireFromString(income)) {
		t.Errorf("expected income %s, got %s", income, totals.Income)
	}
	if !totals.Expenses.Equal(decimal.RequireFromString(expenses)) {
		t.Errorf("expected expenses %s, got %s", expenses, totals.Expenses)
	}
	if !totals.Balance.Equal(decimal.RequireFromString(balance)) {
		t.Errorf("expected balance %s, got %s", balance, totals.Balance)
	}
}

func TestGetTotals(t *testing.T) {
	t.Run("partitions_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeIncome, "100")
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, "40")
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeIncome, "5")

		totals, err := svc.GetTotals(user.ID)
		testutil.AssertNoError(t, err)
		assertTotals(t, totals, "105", "40", "65")
	})

	t.Run("exact_decimal_arithmetic", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeIncome, "0.10")
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeIncome, "0.20")
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, "0.05")

		totals, err := svc.GetTotals(user.ID)
		testutil.AssertNoError(t, err)
		assertTotals(t, totals, "0.30", "0.05", "0.25")
	})

	t.Run("empty_set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		totals, err := svc.GetTotals(user.ID)
		testutil.AssertNoError(t, err)
		assertTotals(t, totals, "0", "0", "0")
	})

	t.Run("negative_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeIncome, "10")
		testutil.CreateTestTransaction(t, db, user.ID, category.ID, models.TransactionTypeExpense, "25")

		totals, err := svc.GetTotals(user.ID)
		testutil.AssertNoError(t, err)
		assertTotals(t, totals, "10", "25", "-15")
	})

	t.Run("isolated_per_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		aliceCategory := testutil.CreateTestCategory(t, db, alice.ID)
		bobCategory := testutil.CreateTestCategory(t, db, bob.ID)

		testutil.CreateTestTransaction(t, db, alice.ID, aliceCategory.ID, models.TransactionTypeIncome, "100")
		testutil.CreateTestTransaction(t, db, bob.ID, bobCategory.ID, models.TransactionTypeIncome, "999")

		totals, err := svc.GetTotals(alice.ID)
		testutil.AssertNoError(t, err)
		assertTotals(t, totals, "100", "0", "100")
	})
}
