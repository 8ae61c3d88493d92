package service

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ core.MailerTemplateStore = (*TemplateStoreDefault)(nil)

type TemplateStoreDefault struct {
	db *gorm.DB
}

func NewTemplateStore(db *gorm.DB) *TemplateStoreDefault {
	return &TemplateStoreDefault{db: db}
}

func (s *TemplateStoreDefault) FindTemplate(ctx context.Context, name, language string) (*core.EmailTemplate, error) {
	var row models.EmailTemplate

	result := s.db.WithContext(ctx).
		Where("name = ? AND language = ?", name, language).
		First(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, core.NewTemplateNotFoundError(name, language)
		}

		return nil, result.Error
	}

	// cached misses come back without ErrRecordNotFound
	if row.ID == 0 {
		return nil, core.NewTemplateNotFoundError(name, language)
	}

	return templateFromModel(row), nil
}

// SaveTemplate inserts the template or replaces the one stored under the same name and language.
func (s *TemplateStoreDefault) SaveTemplate(ctx context.Context, tpl *core.EmailTemplate) error {
	if tpl.Name == "" || tpl.Language == "" {
		return errors.New("template name and language are required")
	}

	row := models.EmailTemplate{
		Name:     tpl.Name,
		Language: tpl.Language,
		Subject:  tpl.Subject,
		Body:     tpl.Body,
		From:     tpl.From,
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"subject", "body", "sender", "updated_at"}),
	}).Create(&row).Error
}

// ListTemplates returns all templates ordered by name and language. A non-empty language filters.
func (s *TemplateStoreDefault) ListTemplates(ctx context.Context, language string) ([]*core.EmailTemplate, error) {
	var rows []models.EmailTemplate

	query := s.db.WithContext(ctx).Order("name").Order("language")
	if language != "" {
		query = query.Where(&models.EmailTemplate{Language: language})
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row models.EmailTemplate, _ int) *core.EmailTemplate {
		return templateFromModel(row)
	}), nil
}

func templateFromModel(row models.EmailTemplate) *core.EmailTemplate {
	return &core.EmailTemplate{
		Name:     row.Name,
		Language: row.Language,
		Subject:  row.Subject,
		Body:     row.Body,
		From:     row.From,
	}
}
