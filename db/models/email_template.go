package models

import (
	"time"
)

func init() {
	registerModel(&EmailTemplate{})
}

// EmailTemplate has no soft delete; a hidden row would still hold its (name, language) key.
type EmailTemplate struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"size:191;not null;uniqueIndex:idx_email_template_name_language"`
	Language  string `gorm:"size:16;not null;uniqueIndex:idx_email_template_name_language"`
	Subject   string
	Body      string `gorm:"type:text"`
	From      string `gorm:"column:sender"`
}
