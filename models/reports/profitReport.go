package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProfitReportResponse struct {
	TotalSales      decimal.Decimal `json:"total_sales"`
	MaterialCost    decimal.Decimal `json:"material_cost"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
}

// GetProfitReport reconciles net profit for a period:
// sales minus material cost (usage movements at snapshot prices) minus
// staff commission minus operating expenses. Everything is recomputed
// from the ledger and invoice tables on every call.
func GetProfitReport(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time) (*ProfitReportResponse, error) {
	sales, err := GetSalesReport(ctx, db, fromDate, toDate, nil)
	if err != nil {
		return nil, err
	}

	materialCost, err := TotalUsageCost(ctx, db, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	commission, err := TotalCommission(ctx, db, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	expenses := decimal.Zero
	err = db.WithContext(ctx).Raw(`
SELECT
    COALESCE(SUM(amount), 0)
FROM
    expenses
WHERE
    expense_date BETWEEN @fromDate AND @toDate
`, map[string]interface{}{
		"fromDate": fromDate,
		"toDate":   toDate,
	}).Scan(&expenses).Error
	if err != nil {
		return nil, err
	}

	netProfit := sales.TotalSales.Sub(materialCost).Sub(commission).Sub(expenses)

	margin := decimal.Zero
	if sales.TotalSales.IsPositive() {
		margin = netProfit.Div(sales.TotalSales).Mul(decimal.NewFromInt(100))
	}

	return &ProfitReportResponse{
		TotalSales:      sales.TotalSales,
		MaterialCost:    materialCost,
		TotalCommission: commission,
		TotalExpenses:   expenses,
		NetProfit:       netProfit,
		ProfitMargin:    margin,
	}, nil
}
