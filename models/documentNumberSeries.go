package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentNumberSeries hands out sequential human-readable numbers per
// document module (QT-000001, INV-000001, ...). The series row is locked for
// the duration of the caller's transaction so concurrent creations cannot
// collide; the number columns additionally carry unique indexes as a backstop.
type DocumentNumberSeries struct {
	ID         int       `gorm:"primary_key" json:"id"`
	ModuleName string    `gorm:"size:100;uniqueIndex;not null" json:"module_name"`
	Prefix     string    `gorm:"size:10;not null" json:"prefix"`
	LastNumber int       `gorm:"not null;default:0" json:"last_number"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

const (
	NumberModuleQuote         = "quotes"
	NumberModuleSalesOrder    = "sales_orders"
	NumberModulePurchaseOrder = "purchase_orders"
	NumberModuleInvoice       = "invoices"
	NumberModulePayment       = "payments"
)

var defaultNumberPrefixes = map[string]string{
	NumberModuleQuote:         "QT",
	NumberModuleSalesOrder:    "SO",
	NumberModulePurchaseOrder: "PO",
	NumberModuleInvoice:       "INV",
	NumberModulePayment:       "PAY",
}

// NextDocumentNumber increments the series inside the caller's transaction and
// returns the formatted number. The SELECT ... FOR UPDATE serializes
// concurrent creators on the same module.
func NextDocumentNumber(tx *gorm.DB, module string) (string, error) {
	var series DocumentNumberSeries
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("module_name = ?", module).
		First(&series).Error
	if err == gorm.ErrRecordNotFound {
		prefix, ok := defaultNumberPrefixes[module]
		if !ok {
			return "", fmt.Errorf("no number series for module %s", module)
		}
		series = DocumentNumberSeries{ModuleName: module, Prefix: prefix}
		if err := tx.Create(&series).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	series.LastNumber++
	if err := tx.Model(&series).UpdateColumn("LastNumber", series.LastNumber).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%06d", series.Prefix, series.LastNumber), nil
}

// IsDuplicateEntry reports a MySQL 1062 unique-key violation; creators retry
// once with a fresh number when the backstop index fires.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

// SeedNumberSeries ensures a series row exists for every module so the first
// creation does not race on insert.
func SeedNumberSeries(db *gorm.DB) error {
	for module, prefix := range defaultNumberPrefixes {
		series := DocumentNumberSeries{ModuleName: module, Prefix: prefix}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&series).Error; err != nil {
			return err
		}
	}
	return nil
}
