package kv

import "time"

// Entry is one persisted slice: a JSON document under a well-known key.
type Entry struct {
	Key       string    `gorm:"column:slice_key;primaryKey;size:64"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Entry) TableName() string {
	return "storefront_slices"
}
