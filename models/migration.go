package models

import "gorm.io/gorm"

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&InventoryItem{}, &StockMovement{},
		&Service{}, &Product{}, &BOMItem{}, &RecipeItem{},
		&Invoice{}, &InvoiceDetail{},
		&Customer{}, &User{}, &Expense{}, &Booking{},
	)
}
