package reports

import (
	"context"
	"time"

	"github.com/kaganerp/kagan_backend/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesReportResponse struct {
	InvoiceCount  int             `json:"invoice_count"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
}

// GetSalesReport aggregates committed invoices in range. An empty range
// returns zero counts and zero sums, never an error.
func GetSalesReport(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time, invoiceType *models.InvoiceType) (*SalesReportResponse, error) {
	sql := `
SELECT
    COUNT(id) AS invoice_count,
    COALESCE(SUM(final_amount), 0) AS total_sales,
    COALESCE(SUM(discount_amount), 0) AS total_discount
FROM
    invoices
WHERE
    created_at BETWEEN @fromDate AND @toDate
    AND (@invoiceType = '' OR invoice_type = @invoiceType)
`
	filterType := ""
	if invoiceType != nil {
		filterType = string(*invoiceType)
	}

	var response SalesReportResponse
	err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate":    fromDate,
		"toDate":      toDate,
		"invoiceType": filterType,
	}).Scan(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}
