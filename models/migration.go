package models

import (
	"gorm.io/gorm"
)

// MigrateTable keeps the schema in sync on startup and seeds the document
// number series.
func MigrateTable(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Client{},
		&DocumentNumberSeries{},
		&Quote{},
		&QuoteItem{},
		&QuoteVersion{},
		&SalesOrder{},
		&SalesOrderItem{},
		&PurchaseOrder{},
		&PurchaseOrderItem{},
		&Invoice{},
		&InvoiceItem{},
		&InvoicePayment{},
	)
	if err != nil {
		return err
	}
	return SeedNumberSeries(db)
}
