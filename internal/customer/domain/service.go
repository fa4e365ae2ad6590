package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidID        = errors.New("invalid_customer_id")
	ErrInvalidName      = errors.New("invalid_customer_name")
	ErrInvalidEmail     = errors.New("invalid_customer_email")
	ErrCustomerNotFound = errors.New("customer_not_found")
)

type CreateCustomerRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

type UpdateCustomerRequest struct {
	ID      string
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

type ListCustomerRequest struct {
	Name  string
	Email string
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (*Customer, error)
	List(ctx context.Context, req ListCustomerRequest) ([]Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	Delete(ctx context.Context, id string) error
}
