package domain

import (
	"context"
	"errors"
)

type SaveRequest struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	Config    Config `json:"config"`
}

// PatchRequest applies one path-based update to a named config document.
type PatchRequest struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Service stores named render configuration documents. The renderer itself
// never touches storage; it receives a parsed Config per call.
type Service interface {
	Save(ctx context.Context, req SaveRequest) (*ConfigDocument, error)
	Patch(ctx context.Context, req PatchRequest) (*ConfigDocument, error)
	List(ctx context.Context) ([]ConfigDocument, error)
	GetByName(ctx context.Context, name string) (*ConfigDocument, error)
	// Resolve returns the parsed config for name, or the default print
	// profile when name is blank.
	Resolve(ctx context.Context, name string) (Config, error)
}

var (
	ErrInvalidConfig = errors.New("invalid_config")
	ErrInvalidName   = errors.New("invalid_config_name")
	ErrNotFound      = errors.New("config_not_found")
)
