package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	templatedomain "github.com/JohnBartlett/bluejay-acct/internal/timetemplate/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) templatedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("timetemplate.service"),
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req templatedomain.CreateTemplateRequest) (*templatedomain.TimeTemplate, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, templatedomain.ErrInvalidDescription
	}

	now := time.Now().UTC()
	template := templatedomain.TimeTemplate{
		ID:          s.genID.Generate(),
		Description: description,
		HourlyRate:  req.HourlyRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(&template).Error; err != nil {
		return nil, err
	}

	s.log.Info("time template created",
		zap.String("template_id", template.ID.String()),
	)
	return &template, nil
}

// Update replaces both fields; the description is required, the hourly rate
// clears when omitted, matching Create.
func (s *Service) Update(ctx context.Context, req templatedomain.UpdateTemplateRequest) (*templatedomain.TimeTemplate, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return nil, templatedomain.ErrInvalidTemplateID
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, templatedomain.ErrInvalidDescription
	}

	var template templatedomain.TimeTemplate
	if err := s.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, templatedomain.ErrTemplateNotFound
		}
		return nil, err
	}

	template.Description = description
	template.HourlyRate = req.HourlyRate
	template.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (s *Service) List(ctx context.Context) ([]templatedomain.TimeTemplate, error) {
	var templates []templatedomain.TimeTemplate
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return templatedomain.ErrInvalidTemplateID
	}

	result := s.db.WithContext(ctx).Delete(&templatedomain.TimeTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return templatedomain.ErrTemplateNotFound
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
