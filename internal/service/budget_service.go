package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/storage"
)

// MonthSummary is the budget position for one calendar month.
// Amounts are exact decimals rounded to two places.
type MonthSummary struct {
	Year  int
	Month time.Month

	Income   decimal.Decimal
	Expenses decimal.Decimal

	// Budget is the configured monthly budget; Remaining is Budget - Expenses
	// and goes negative when the budget is blown.
	Budget    decimal.Decimal
	Remaining decimal.Decimal

	// SavingsRate is (Income - Expenses) / Income, zero when there is no
	// income for the month.
	SavingsRate decimal.Decimal
}

// BudgetService computes monthly budget summaries.
type BudgetService struct {
	store storage.Store
}

// NewBudgetService creates a BudgetService with the given storage backend.
func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

// MonthSummary totals the month's income and expenses against the configured
// monthly budget. Entries flagged excludeFromBudget are ignored. Summation
// uses decimal arithmetic so many small float64 amounts don't accumulate
// rounding error.
func (s *BudgetService) MonthSummary(ctx context.Context, year int, month time.Month, loc *time.Location) (*MonthSummary, error) {
	entries, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	income := decimal.Zero
	spent := decimal.Zero
	for _, e := range entries {
		if e.ExcludeFromBudget {
			continue
		}
		d := time.Unix(e.Date, 0).In(loc)
		if d.Year() != year || d.Month() != month {
			continue
		}

		amount := decimal.NewFromFloat(e.Amount)
		if e.Type == models.TypeIncome {
			income = income.Add(amount)
		} else {
			spent = spent.Add(amount)
		}
	}

	budget := decimal.Zero
	if settings != nil {
		budget = decimal.NewFromFloat(settings.MonthlyBudget)
	}

	rate := decimal.Zero
	if income.IsPositive() {
		rate = income.Sub(spent).Div(income)
	}

	return &MonthSummary{
		Year:        year,
		Month:       month,
		Income:      income.Round(2),
		Expenses:    spent.Round(2),
		Budget:      budget.Round(2),
		Remaining:   budget.Sub(spent).Round(2),
		SavingsRate: rate.Round(4),
	}, nil
}
