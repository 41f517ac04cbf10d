package models_test

import (
	"context"
	"testing"

	"github.com/kaganerp/kagan_backend/config"
	"github.com/kaganerp/kagan_backend/models"
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

func actorContext(t *testing.T, db *gorm.DB, commissionPercentage int) (context.Context, *models.User) {
	t.Helper()
	ctx := context.Background()
	user, err := models.CreateUser(ctx, db, &models.NewUser{
		Username:             "staff-" + t.Name(),
		FullName:             "Test Staff",
		Password:             "secret",
		Role:                 models.UserRoleBarber,
		CommissionPercentage: commissionPercentage,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return utils.SetUserIdInContext(ctx, user.ID), user
}

func mustCreateItem(t *testing.T, db *gorm.DB, name string, code string, stock string, minAlert string, unitPrice string) *models.InventoryItem {
	t.Helper()
	item, err := models.CreateInventoryItem(context.Background(), db, &models.NewInventoryItem{
		Name:          name,
		Code:          code,
		InventoryType: models.InventoryTypeCafe,
		ItemKind:      models.ItemKindRawMaterial,
		Unit:          models.UnitTypeMl,
		CurrentStock:  decimal.RequireFromString(stock),
		MinStockAlert: decimal.RequireFromString(minAlert),
		UnitPrice:     decimal.RequireFromString(unitPrice),
	})
	if err != nil {
		t.Fatalf("CreateInventoryItem(%s): %v", name, err)
	}
	return item
}

func mustCreateService(t *testing.T, db *gorm.DB, name string, price string) *models.Service {
	t.Helper()
	service, err := models.CreateService(context.Background(), db, &models.NewService{
		Name:     name,
		Category: models.ServiceCategoryColoring,
		Price:    decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("CreateService(%s): %v", name, err)
	}
	return service
}

func mustCreateProduct(t *testing.T, db *gorm.DB, name string, code string, price string) *models.Product {
	t.Helper()
	product, err := models.CreateProduct(context.Background(), db, &models.NewProduct{
		Name:  name,
		Code:  code,
		Price: decimal.RequireFromString(price),
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s): %v", name, err)
	}
	return product
}

func mustAddRecipe(t *testing.T, db *gorm.DB, productId int, itemId int, qty string) {
	t.Helper()
	_, err := models.AddRecipeItem(context.Background(), db, productId, &models.NewCompositionEdge{
		InventoryItemId: itemId,
		Qty:             decimal.RequireFromString(qty),
	})
	if err != nil {
		t.Fatalf("AddRecipeItem: %v", err)
	}
}

func mustAddBOM(t *testing.T, db *gorm.DB, serviceId int, itemId int, qty string) {
	t.Helper()
	_, err := models.AddBOMItem(context.Background(), db, serviceId, &models.NewCompositionEdge{
		InventoryItemId: itemId,
		Qty:             decimal.RequireFromString(qty),
	})
	if err != nil {
		t.Fatalf("AddBOMItem: %v", err)
	}
}

func refetchItem(t *testing.T, db *gorm.DB, id int) *models.InventoryItem {
	t.Helper()
	item, err := models.GetInventoryItem(context.Background(), db, id)
	if err != nil {
		t.Fatalf("GetInventoryItem(%d): %v", id, err)
	}
	return item
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func intPtr(v int) *int { return &v }
