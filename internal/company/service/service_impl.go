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

	companydomain "github.com/JohnBartlett/bluejay-acct/internal/company/domain"
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

func NewService(p ServiceParam) companydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
	}
}

func (s *Service) Get(ctx context.Context) (*companydomain.Company, error) {
	var company companydomain.Company
	err := s.db.WithContext(ctx).Order("id ASC").First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companydomain.ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (s *Service) Update(ctx context.Context, req companydomain.UpdateCompanyRequest) (*companydomain.Company, error) {
	company, err := s.Get(ctx)
	if err != nil {
		if !errors.Is(err, companydomain.ErrCompanyNotFound) {
			return nil, err
		}
		now := time.Now().UTC()
		company = &companydomain.Company{
			ID:        s.genID.Generate(),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, companydomain.ErrInvalidCompanyName
		}
		company.Name = name
	}
	if company.Name == "" {
		return nil, companydomain.ErrInvalidCompanyName
	}
	if req.Address != nil {
		company.Address = strings.TrimSpace(*req.Address)
	}
	if req.Email != nil {
		company.Email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.Phone != nil {
		company.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LogoText != nil {
		company.LogoText = strings.TrimSpace(*req.LogoText)
	}
	company.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}
