package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidCompanyName = errors.New("invalid_company_name")
	ErrCompanyNotFound    = errors.New("company_not_found")
)

type UpdateCompanyRequest struct {
	Name     *string
	Address  *string
	Email    *string
	Phone    *string
	LogoText *string
}

type Service interface {
	Get(ctx context.Context) (*Company, error)
	Update(ctx context.Context, req UpdateCompanyRequest) (*Company, error)
}
