package models

import (
	"time"

	"gorm.io/gorm"
)

func init() {
	registerModel(&Email{})
}

// Email is a committed outbox row. SentAt is owned by whatever dispatches the queue.
type Email struct {
	gorm.Model

	MessageID string `gorm:"size:36;uniqueIndex"`
	Sender    string
	Recipient string `gorm:"index"`
	Subject   string
	Body      string `gorm:"type:text"`
	StagedAt  time.Time
	SentAt    *time.Time `gorm:"index"`
}
