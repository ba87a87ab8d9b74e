package models

import "time"

// StoredValue is one persisted client-state key for a browser session.
type StoredValue struct {
	ID        uint      `gorm:"primaryKey"`
	Namespace string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_client_state_key"`
	Key       string    `gorm:"column:state_key;type:varchar(64);not null;uniqueIndex:idx_client_state_key"`
	Value     string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StoredValue) TableName() string {
	return "client_states"
}
