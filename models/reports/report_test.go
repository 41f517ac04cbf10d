package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/kaganerp/kagan_backend/config"
	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/models/reports"
	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectTestDatabase()
	if err != nil {
		t.Fatalf("ConnectTestDatabase: %v", err)
	}
	if err := models.MigrateTable(db); err != nil {
		t.Fatalf("MigrateTable: %v", err)
	}
	return db
}

func reportRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

func createStaff(t *testing.T, db *gorm.DB, username string, commissionPercentage int) *models.User {
	t.Helper()
	user, err := models.CreateUser(context.Background(), db, &models.NewUser{
		Username:             username,
		FullName:             username,
		Password:             "secret",
		Role:                 models.UserRoleBarber,
		CommissionPercentage: commissionPercentage,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return user
}

func createItem(t *testing.T, db *gorm.DB, name string, code string, stock string, unitPrice string) *models.InventoryItem {
	t.Helper()
	item, err := models.CreateInventoryItem(context.Background(), db, &models.NewInventoryItem{
		Name:          name,
		Code:          code,
		InventoryType: models.InventoryTypeBarbershop,
		ItemKind:      models.ItemKindRawMaterial,
		Unit:          models.UnitTypeMl,
		CurrentStock:  decimal.RequireFromString(stock),
		MinStockAlert: decimal.NewFromInt(1),
		UnitPrice:     decimal.RequireFromString(unitPrice),
	})
	if err != nil {
		t.Fatalf("CreateInventoryItem(%s): %v", name, err)
	}
	return item
}

// sellService commits a one-line service invoice attributed to barberId.
func sellService(t *testing.T, db *gorm.DB, actor *models.User, serviceId int, barberId int, price string) *models.Invoice {
	t.Helper()
	ctx := utils.SetUserIdInContext(context.Background(), actor.ID)
	invoice, err := models.CreateInvoice(ctx, db, &models.NewInvoice{
		InvoiceType: models.InvoiceTypeBarbershop,
		Details: []models.NewInvoiceDetail{{
			ItemType:  models.SellableTypeService,
			ServiceId: &serviceId,
			Qty:       1,
			UnitPrice: decimal.RequireFromString(price),
			BarberId:  &barberId,
		}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}
	return invoice
}

func createService(t *testing.T, db *gorm.DB, name string, price string) *models.Service {
	t.Helper()
	service, err := models.CreateService(context.Background(), db, &models.NewService{
		Name:     name,
		Category: models.ServiceCategoryHaircut,
		Price:    decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("CreateService(%s): %v", name, err)
	}
	return service
}

func TestCommissionReportIncludesZeroPercentStaff(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	from, to := reportRange()

	senior := createStaff(t, db, "senior", 30)
	junior := createStaff(t, db, "junior", 0)
	haircut := createService(t, db, "Haircut", "50000")

	sellService(t, db, senior, haircut.ID, senior.ID, "100000")
	sellService(t, db, senior, haircut.ID, junior.ID, "50000")

	records, err := reports.GetCommissionReport(ctx, db, from, to, nil)
	if err != nil {
		t.Fatalf("GetCommissionReport: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count = %d, want 2 (zero-percent staff included)", len(records))
	}

	byBarber := map[int]*reports.CommissionReportResponse{}
	for _, r := range records {
		byBarber[r.BarberId] = r
	}

	got := byBarber[senior.ID]
	if got == nil {
		t.Fatal("senior barber missing from report")
	}
	if !got.TotalSales.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("senior total sales = %s, want 100000", got.TotalSales)
	}
	if !got.CommissionAmount.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("senior commission = %s, want 30000", got.CommissionAmount)
	}

	got = byBarber[junior.ID]
	if got == nil {
		t.Fatal("zero-percent barber missing from report")
	}
	if !got.TotalSales.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("junior total sales = %s, want 50000", got.TotalSales)
	}
	if !got.CommissionAmount.IsZero() {
		t.Errorf("junior commission = %s, want 0", got.CommissionAmount)
	}
}

func TestCommissionReportBarberFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	from, to := reportRange()

	senior := createStaff(t, db, "senior", 30)
	junior := createStaff(t, db, "junior", 10)
	haircut := createService(t, db, "Haircut", "50000")

	sellService(t, db, senior, haircut.ID, senior.ID, "100000")
	sellService(t, db, senior, haircut.ID, junior.ID, "50000")

	records, err := reports.GetCommissionReport(ctx, db, from, to, &junior.ID)
	if err != nil {
		t.Fatalf("GetCommissionReport: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	if records[0].BarberId != junior.ID {
		t.Errorf("barber id = %d, want %d", records[0].BarberId, junior.ID)
	}
	if !records[0].CommissionAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("commission = %s, want 5000", records[0].CommissionAmount)
	}
}

func TestSalesReportIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	from, to := reportRange()

	staff := createStaff(t, db, "staff", 0)
	haircut := createService(t, db, "Haircut", "50000")
	sellService(t, db, staff, haircut.ID, staff.ID, "50000")

	first, err := reports.GetSalesReport(ctx, db, from, to, nil)
	if err != nil {
		t.Fatalf("GetSalesReport: %v", err)
	}
	second, err := reports.GetSalesReport(ctx, db, from, to, nil)
	if err != nil {
		t.Fatalf("GetSalesReport: %v", err)
	}

	if first.InvoiceCount != 1 || second.InvoiceCount != 1 {
		t.Errorf("invoice counts = %d/%d, want 1/1", first.InvoiceCount, second.InvoiceCount)
	}
	if !first.TotalSales.Equal(second.TotalSales) || !first.TotalSales.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("total sales = %s/%s, want 50000 both times", first.TotalSales, second.TotalSales)
	}
}

func TestSalesReportEmptyRange(t *testing.T) {
	db := newTestDB(t)
	from, to := reportRange()

	report, err := reports.GetSalesReport(context.Background(), db, from, to, nil)
	if err != nil {
		t.Fatalf("GetSalesReport: %v", err)
	}
	if report.InvoiceCount != 0 || !report.TotalSales.IsZero() || !report.TotalDiscount.IsZero() {
		t.Errorf("empty range report = %+v, want all zeros", report)
	}
}

func TestUsageReportCostsAtSnapshotPrice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	from, to := reportRange()

	dye := createItem(t, db, "Hair Dye", "DYE", "100", "1000")

	if _, err := models.DeductStock(db, ctx, dye.ID, decimal.NewFromInt(2), models.ReferenceTypeInvoice, 1, ""); err != nil {
		t.Fatalf("DeductStock: %v", err)
	}

	// A later, pricier purchase must not rewrite the cost of past usage.
	newPrice := decimal.NewFromInt(2000)
	if _, err := models.AddStock(db, ctx, dye.ID, decimal.NewFromInt(10), &newPrice, ""); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if _, err := models.DeductStock(db, ctx, dye.ID, decimal.NewFromInt(1), models.ReferenceTypeInvoice, 2, ""); err != nil {
		t.Fatalf("DeductStock: %v", err)
	}

	records, err := reports.GetInventoryUsageReport(ctx, db, from, to)
	if err != nil {
		t.Fatalf("GetInventoryUsageReport: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	if !records[0].TotalQty.Equal(decimal.NewFromInt(3)) {
		t.Errorf("total qty = %s, want 3", records[0].TotalQty)
	}
	// 2 @ 1000 + 1 @ 2000
	if !records[0].TotalCost.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("total cost = %s, want 4000", records[0].TotalCost)
	}
}

func TestProfitReportReconciles(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	from, to := reportRange()

	barber := createStaff(t, db, "barber", 10)
	dye := createItem(t, db, "Hair Dye", "DYE", "100", "200")
	coloring := createService(t, db, "Coloring", "100000")
	if _, err := models.AddBOMItem(ctx, db, coloring.ID, &models.NewCompositionEdge{
		InventoryItemId: dye.ID,
		Qty:             decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("AddBOMItem: %v", err)
	}

	sellService(t, db, barber, coloring.ID, barber.ID, "100000")

	if _, err := models.CreateExpense(ctx, db, &models.NewExpense{
		Title:       "Rent",
		Amount:      decimal.NewFromInt(10000),
		ExpenseDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	report, err := reports.GetProfitReport(ctx, db, from, to)
	if err != nil {
		t.Fatalf("GetProfitReport: %v", err)
	}

	if !report.TotalSales.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("total sales = %s, want 100000", report.TotalSales)
	}
	// 100 units of dye at the 200 snapshot price.
	if !report.MaterialCost.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("material cost = %s, want 20000", report.MaterialCost)
	}
	if !report.TotalCommission.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("commission = %s, want 10000", report.TotalCommission)
	}
	if !report.TotalExpenses.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expenses = %s, want 10000", report.TotalExpenses)
	}
	if !report.NetProfit.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("net profit = %s, want 60000", report.NetProfit)
	}
	if !report.ProfitMargin.Equal(decimal.NewFromInt(60)) {
		t.Errorf("profit margin = %s, want 60", report.ProfitMargin)
	}
}

func TestProfitReportZeroSales(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	from, to := reportRange()

	if _, err := models.CreateExpense(ctx, db, &models.NewExpense{
		Title:       "Rent",
		Amount:      decimal.NewFromInt(10000),
		ExpenseDate: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	report, err := reports.GetProfitReport(ctx, db, from, to)
	if err != nil {
		t.Fatalf("GetProfitReport: %v", err)
	}
	if !report.NetProfit.Equal(decimal.NewFromInt(-10000)) {
		t.Errorf("net profit = %s, want -10000", report.NetProfit)
	}
	if !report.ProfitMargin.IsZero() {
		t.Errorf("profit margin = %s, want 0 when there are no sales", report.ProfitMargin)
	}
}

func TestDashboardReport(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	staff := createStaff(t, db, "staff", 0)
	haircut := createService(t, db, "Haircut", "50000")
	sellService(t, db, staff, haircut.ID, staff.ID, "50000")
	createItem(t, db, "Hair Dye", "DYE", "10", "1000")

	report, err := reports.GetDashboardReport(ctx, db, time.Now().UTC())
	if err != nil {
		t.Fatalf("GetDashboardReport: %v", err)
	}
	if report.TodayInvoices != 1 {
		t.Errorf("today invoice count = %d, want 1", report.TodayInvoices)
	}
	if !report.TodaySales.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("today sales = %s, want 50000", report.TodaySales)
	}
	if !report.InventoryValue.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("inventory value = %s, want 10000", report.InventoryValue)
	}
}
