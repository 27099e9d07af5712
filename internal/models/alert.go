package models

import (
	"time"

	"github.com/lib/pq"
)

// Alert flags a transaction that scored high risk. Stored in the "alert" collection.
type Alert struct {
	ID             string         `gorm:"primaryKey;type:uuid" json:"id"`
	TransactionRef string         `gorm:"not null;index" json:"transaction_ref"`
	UserID         string         `gorm:"not null;index" json:"user_id"`
	Reason         string         `gorm:"type:text;not null" json:"reason"`
	RiskScore      float64        `gorm:"not null" json:"risk_score"`
	RiskLevel      RiskLevel      `gorm:"type:varchar(16);not null" json:"risk_level"`
	Tags           pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
}

func (Alert) TableName() string { return CollectionAlert }
