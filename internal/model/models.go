package model

import (
	"time"

	"gorm.io/datatypes"
)

// EventRecord is one inbound envelope kept in the session journal.
type EventRecord struct {
	ID         string         `gorm:"primaryKey;size:36"`
	SessionID  string         `gorm:"index;not null"`
	Type       string         `gorm:"index;not null"`
	Payload    datatypes.JSON `gorm:"type:json"`
	ReceivedAt time.Time      `gorm:"index"`
}
