package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportUsageReportExcel renders the inventory usage report as a workbook.
func ExportUsageReportExcel(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time) (*excelize.File, error) {
	data, err := GetInventoryUsageReport(ctx, db, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetCellValue("Sheet1", "A1", "Item")
	f.SetCellValue("Sheet1", "B1", "Unit")
	f.SetCellValue("Sheet1", "C1", "QuantityUsed")
	f.SetCellValue("Sheet1", "D1", "Cost")

	for i, d := range data {
		f.SetCellValue("Sheet1", "A"+fmt.Sprint(i+2), d.ItemName)
		f.SetCellValue("Sheet1", "B"+fmt.Sprint(i+2), d.Unit)
		f.SetCellValue("Sheet1", "C"+fmt.Sprint(i+2), d.TotalQty.InexactFloat64())
		f.SetCellValue("Sheet1", "D"+fmt.Sprint(i+2), d.TotalCost.InexactFloat64())
	}
	return f, nil
}

// ExportCommissionReportExcel renders the commission report as a workbook.
func ExportCommissionReportExcel(ctx context.Context, db *gorm.DB, fromDate time.Time, toDate time.Time) (*excelize.File, error) {
	data, err := GetCommissionReport(ctx, db, fromDate, toDate, nil)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if _, err := f.NewSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetCellValue("Sheet1", "A1", "Barber")
	f.SetCellValue("Sheet1", "B1", "CommissionPercentage")
	f.SetCellValue("Sheet1", "C1", "Lines")
	f.SetCellValue("Sheet1", "D1", "Sales")
	f.SetCellValue("Sheet1", "E1", "Commission")

	for i, d := range data {
		f.SetCellValue("Sheet1", "A"+fmt.Sprint(i+2), d.BarberName)
		f.SetCellValue("Sheet1", "B"+fmt.Sprint(i+2), d.CommissionPercentage)
		f.SetCellValue("Sheet1", "C"+fmt.Sprint(i+2), d.LineCount)
		f.SetCellValue("Sheet1", "D"+fmt.Sprint(i+2), d.TotalSales.InexactFloat64())
		f.SetCellValue("Sheet1", "E"+fmt.Sprint(i+2), d.CommissionAmount.InexactFloat64())
	}
	return f, nil
}
