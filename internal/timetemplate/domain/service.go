package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidTemplateID  = errors.New("invalid_template_id")
	ErrInvalidDescription = errors.New("invalid_template_description")
	ErrTemplateNotFound   = errors.New("template_not_found")
)

type CreateTemplateRequest struct {
	Description string
	HourlyRate  *float64
}

type UpdateTemplateRequest struct {
	ID          string
	Description string
	HourlyRate  *float64
}

type Service interface {
	Create(ctx context.Context, req CreateTemplateRequest) (*TimeTemplate, error)
	Update(ctx context.Context, req UpdateTemplateRequest) (*TimeTemplate, error)
	List(ctx context.Context) ([]TimeTemplate, error)
	Delete(ctx context.Context, id string) error
}
