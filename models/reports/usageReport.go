package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UsageReportResponse struct {
	ItemId    int             `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Unit      string          `json:"unit"`
	TotalQty  decimal.Decimal `json:"total_qty"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

// GetInventoryUsageReport groups usage movements by item. Cost uses the
// unit price snapshotted on each movement at deduction time, so later
// purchase-price changes do not rewrite history.
func GetInventoryUsageReport(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time) ([]*UsageReportResponse, error) {
	sql := `
SELECT
    m.item_id,
    it.name AS item_name,
    it.unit,
    COALESCE(SUM(ABS(m.qty)), 0) AS total_qty,
    COALESCE(SUM(ABS(m.qty) * m.unit_price), 0) AS total_cost
FROM
    stock_movements AS m
    JOIN inventory_items AS it ON m.item_id = it.id
WHERE
    m.movement_type = 'usage'
    AND m.created_at BETWEEN @fromDate AND @toDate
GROUP BY
    m.item_id, it.name, it.unit
ORDER BY
    total_cost DESC
`
	records := []*UsageReportResponse{}
	err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate": fromDate,
		"toDate":   toDate,
	}).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TotalUsageCost sums material cost of usage movements in range.
func TotalUsageCost(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time) (decimal.Decimal, error) {
	sql := `
SELECT
    COALESCE(SUM(ABS(qty) * unit_price), 0)
FROM
    stock_movements
WHERE
    movement_type = 'usage'
    AND created_at BETWEEN @fromDate AND @toDate
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
