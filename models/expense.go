package models

import (
	"context"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is an operating cost (rent, salaries, utilities) outside the
// material ledger. The net profit report subtracts expenses in range.
type Expense struct {
	ID          int             `gorm:"primary_key" json:"id"`
	Title       string          `gorm:"size:100;not null" json:"title"`
	Category    string          `gorm:"size:50" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	ExpenseDate time.Time       `gorm:"index;not null" json:"expense_date"`
	Notes       string          `gorm:"size:255" json:"notes"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewExpense struct {
	Title       string          `json:"title" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	Notes       string          `json:"notes"`
}

func CreateExpense(ctx context.Context, db *gorm.DB, input *NewExpense) (*Expense, error) {
	if input.Title == "" {
		return nil, utils.NewValidationError("expense title is required")
	}
	if !input.Amount.IsPositive() {
		return nil, utils.NewValidationError("expense amount must be positive")
	}

	expense := Expense{
		Title:       input.Title,
		Category:    input.Category,
		Amount:      input.Amount,
		ExpenseDate: input.ExpenseDate,
		Notes:       input.Notes,
	}
	if err := db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func ListExpenses(ctx context.Context, db *gorm.DB, fromDate *time.Time, toDate *time.Time) ([]*Expense, error) {
	var expenses []*Expense
	dbCtx := db.WithContext(ctx).Model(&Expense{})
	if fromDate != nil {
		dbCtx = dbCtx.Where("expense_date >= ?", *fromDate)
	}
	if toDate != nil {
		dbCtx = dbCtx.Where("expense_date <= ?", *toDate)
	}
	if err := dbCtx.Order("expense_date DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}
