package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CommissionReportResponse struct {
	BarberId             int             `json:"barber_id"`
	BarberName           string          `json:"barber_name"`
	CommissionPercentage int             `json:"commission_percentage"`
	LineCount            int             `json:"line_count"`
	TotalSales           decimal.Decimal `json:"total_sales"`
	CommissionAmount     decimal.Decimal `json:"commission_amount"`
}

// GetCommissionReport attributes line revenue to the staff member who
// performed each service and computes commission at report time from the
// staff member's current percentage. Staff at 0% appear with zero
// commission; they are not filtered out.
func GetCommissionReport(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time, barberId *int) ([]*CommissionReportResponse, error) {
	sql := `
SELECT
    u.id AS barber_id,
    u.full_name AS barber_name,
    u.commission_percentage,
    COUNT(ii.id) AS line_count,
    COALESCE(SUM(ii.total_price), 0) AS total_sales,
    COALESCE(SUM(ii.total_price * u.commission_percentage / 100.0), 0) AS commission_amount
FROM
    invoice_details AS ii
    JOIN invoices AS i ON ii.invoice_id = i.id
    JOIN users AS u ON ii.barber_id = u.id
WHERE
    ii.barber_id IS NOT NULL
    AND i.created_at BETWEEN @fromDate AND @toDate
    AND (@barberId = 0 OR ii.barber_id = @barberId)
GROUP BY
    ii.barber_id, u.full_name, u.commission_percentage
ORDER BY
    total_sales DESC
`
	filterBarber := 0
	if barberId != nil {
		filterBarber = *barberId
	}

	records := []*CommissionReportResponse{}
	err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate": fromDate,
		"toDate":   toDate,
		"barberId": filterBarber,
	}).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TotalCommission sums commission over all staff for the profit report.
func TotalCommission(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time) (decimal.Decimal, error) {
	sql := `
SELECT
    COALESCE(SUM(ii.total_price * u.commission_percentage / 100.0), 0)
FROM
    invoice_details AS ii
    JOIN invoices AS i ON ii.invoice_id = i.id
    JOIN users AS u ON ii.barber_id = u.id
WHERE
    ii.barber_id IS NOT NULL
    AND i.created_at BETWEEN @fromDate AND @toDate
`
	total := decimal.Zero
	err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate": fromDate,
		"toDate":   toDate,
	}).Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
