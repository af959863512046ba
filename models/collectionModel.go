package models

import (
	"time"
)

// CollectionRecord holds one whole collection as a JSON document.
type CollectionRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:64" json:"key"`
	Payload   string    `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CollectionRecord) TableName() string {
	return "collections"
}
