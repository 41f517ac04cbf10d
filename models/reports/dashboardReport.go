package reports

import (
	"context"
	"time"

	"github.com/kaganerp/kagan_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardReportResponse struct {
	TodaySales     decimal.Decimal `json:"today_sales"`
	MonthSales     decimal.Decimal `json:"month_sales"`
	TodayInvoices  int             `json:"today_invoices"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// GetDashboardReport summarizes the day and month up to now.
func GetDashboardReport(ctx context.Context, db *gorm.DB, now time.Time) (*DashboardReportResponse, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todaySales, err := GetSalesReport(ctx, db, dayStart, now, nil)
	if err != nil {
		return nil, err
	}
	monthSales, err := GetSalesReport(ctx, db, monthStart, now, nil)
	if err != nil {
		return nil, err
	}
	inventoryValue, err := models.TotalInventoryValue(ctx, db, nil)
	if err != nil {
		return nil, err
	}

	return &DashboardReportResponse{
		TodaySales:     todaySales.TotalSales,
		MonthSales:     monthSales.TotalSales,
		TodayInvoices:  todaySales.InvoiceCount,
		InventoryValue: inventoryValue,
	}, nil
}
