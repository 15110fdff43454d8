package models

import (
	"context"
	"time"

	"github.com/mmsalesdesk/salesdesk_backend/config"
)

// QuoteVersion is an immutable snapshot of a quote taken at revision time.
// The snapshot column carries the full quote JSON (items included) as it stood
// before the revision reset the quote to draft.
type QuoteVersion struct {
	ID        int         `gorm:"primary_key" json:"id"`
	QuoteId   int         `gorm:"not null;index" json:"quote_id"`
	Version   int         `gorm:"not null" json:"version"`
	Status    QuoteStatus `gorm:"size:50;not null" json:"status"`
	Snapshot  string      `gorm:"type:longtext;not null" json:"snapshot"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func GetQuoteVersions(ctx context.Context, quoteId int) ([]*QuoteVersion, error) {
	db := config.GetDB()
	var results []*QuoteVersion
	err := db.WithContext(ctx).
		Where("quote_id = ?", quoteId).
		Order("version").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
