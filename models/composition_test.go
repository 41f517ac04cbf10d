package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
)

func TestAddBOMItemRejectsDuplicateEdge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	dye := mustCreateItem(t, db, "Hair Dye", "DYE", "1000", "100", "50")
	coloring := mustCreateService(t, db, "Hair Coloring", "150000")
	mustAddBOM(t, db, coloring.ID, dye.ID, "50")

	_, err := models.AddBOMItem(ctx, db, coloring.ID, &models.NewCompositionEdge{
		InventoryItemId: dye.ID,
		Qty:             decimal.NewFromInt(25),
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("duplicate BOM edge error = %v, want validation error", err)
	}
}

func TestAddRecipeItemRejectsDuplicateEdge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	milk := mustCreateItem(t, db, "Milk", "MILK", "10", "2", "1000")
	latte := mustCreateProduct(t, db, "Latte", "LATTE", "25000")
	mustAddRecipe(t, db, latte.ID, milk.ID, "0.15")

	_, err := models.AddRecipeItem(ctx, db, latte.ID, &models.NewCompositionEdge{
		InventoryItemId: milk.ID,
		Qty:             decimal.RequireFromString("0.2"),
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("duplicate recipe edge error = %v, want validation error", err)
	}
}

func TestCompositionEdgeRequiresPositiveQty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	milk := mustCreateItem(t, db, "Milk", "MILK", "10", "2", "1000")
	latte := mustCreateProduct(t, db, "Latte", "LATTE", "25000")

	_, err := models.AddRecipeItem(ctx, db, latte.ID, &models.NewCompositionEdge{
		InventoryItemId: milk.ID,
		Qty:             decimal.Zero,
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("zero qty edge error = %v, want validation error", err)
	}
}

func TestGetComposition(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	milk := mustCreateItem(t, db, "Milk", "MILK", "10", "2", "1000")
	beans := mustCreateItem(t, db, "Beans", "BEAN", "5", "1", "2500")
	latte := mustCreateProduct(t, db, "Latte", "LATTE", "25000")
	mustAddRecipe(t, db, latte.ID, milk.ID, "0.15")
	mustAddRecipe(t, db, latte.ID, beans.ID, "0.018")

	requirements, err := models.GetComposition(ctx, db, models.SellableTypeProduct, latte.ID)
	if err != nil {
		t.Fatalf("GetComposition: %v", err)
	}
	if len(requirements) != 2 {
		t.Fatalf("requirement count = %d, want 2", len(requirements))
	}

	// A service with no BOM resolves to an empty (valid) composition.
	bare := mustCreateService(t, db, "Consultation", "10000")
	requirements, err = models.GetComposition(ctx, db, models.SellableTypeService, bare.ID)
	if err != nil {
		t.Fatalf("GetComposition: %v", err)
	}
	if len(requirements) != 0 {
		t.Errorf("bare service requirement count = %d, want 0", len(requirements))
	}

	// Retail items carry no composition rows at all.
	requirements, err = models.GetComposition(ctx, db, models.SellableTypeRetail, milk.ID)
	if err != nil {
		t.Fatalf("GetComposition: %v", err)
	}
	if len(requirements) != 0 {
		t.Errorf("retail requirement count = %d, want 0", len(requirements))
	}

	if _, err := models.GetComposition(ctx, db, models.SellableTypeService, 999); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Errorf("missing sellable error = %v, want ErrorRecordNotFound", err)
	}
}

func TestRemoveCompositionEdge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	milk := mustCreateItem(t, db, "Milk", "MILK", "10", "2", "1000")
	latte := mustCreateProduct(t, db, "Latte", "LATTE", "25000")
	edge, err := models.AddRecipeItem(ctx, db, latte.ID, &models.NewCompositionEdge{
		InventoryItemId: milk.ID,
		Qty:             decimal.RequireFromString("0.15"),
	})
	if err != nil {
		t.Fatalf("AddRecipeItem: %v", err)
	}

	if err := models.RemoveRecipeItem(ctx, db, edge.ID); err != nil {
		t.Fatalf("RemoveRecipeItem: %v", err)
	}
	requirements, err := models.GetComposition(ctx, db, models.SellableTypeProduct, latte.ID)
	if err != nil {
		t.Fatalf("GetComposition: %v", err)
	}
	if len(requirements) != 0 {
		t.Errorf("requirement count after removal = %d, want 0", len(requirements))
	}

	if err := models.RemoveRecipeItem(ctx, db, edge.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Errorf("double removal error = %v, want ErrorRecordNotFound", err)
	}
}
