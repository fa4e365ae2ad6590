package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/JohnBartlett/bluejay-acct/internal/cache"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
)

const parsedConfigTTL = 5 * time.Minute

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID  *snowflake.Node
	parsed cache.Cache[string, configdomain.Config]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) configdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("invoiceconfig.service"),
		genID:  p.GenID,
		parsed: cache.NewTTLCache[string, configdomain.Config](),
	}
}

func (s *Service) Save(ctx context.Context, req configdomain.SaveRequest) (*configdomain.ConfigDocument, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, configdomain.ErrInvalidName
	}
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(req.Config)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc, err := s.loadByName(ctx, name)
	if err != nil && !errors.Is(err, configdomain.ErrNotFound) {
		return nil, err
	}
	if doc == nil {
		doc = &configdomain.ConfigDocument{
			ID:        s.genID.Generate(),
			Name:      name,
			CreatedAt: now,
		}
	}
	doc.IsDefault = req.IsDefault
	doc.Document = datatypes.JSON(raw)
	doc.UpdatedAt = now

	if err := s.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	s.parsed.Delete(name)

	s.log.Info("config document saved", zap.String("name", name))
	return doc, nil
}

// Patch applies one path-based update through Config.With, so the stored
// document is always a validated whole, never a partially mutated one.
func (s *Service) Patch(ctx context.Context, req configdomain.PatchRequest) (*configdomain.ConfigDocument, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, configdomain.ErrInvalidName
	}

	doc, err := s.loadByName(ctx, name)
	if err != nil {
		return nil, err
	}
	cfg, err := doc.Parsed()
	if err != nil {
		return nil, err
	}

	updated, err := cfg.With(req.Path, req.Value)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}
	doc.Document = datatypes.JSON(raw)
	doc.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	s.parsed.Delete(name)

	s.log.Info("config document patched",
		zap.String("name", name),
		zap.String("path", req.Path),
	)
	return doc, nil
}

func (s *Service) List(ctx context.Context) ([]configdomain.ConfigDocument, error) {
	var docs []configdomain.ConfigDocument
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*configdomain.ConfigDocument, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, configdomain.ErrInvalidName
	}
	return s.loadByName(ctx, name)
}

// Resolve returns the parsed config for name, consulting the TTL cache
// first. A blank name resolves to the default document, falling back to the
// built-in print profile when nothing is stored yet.
func (s *Service) Resolve(ctx context.Context, name string) (configdomain.Config, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.resolveDefault(ctx)
	}
	return s.parsed.GetOrSet(name, parsedConfigTTL, func() (configdomain.Config, error) {
		doc, err := s.loadByName(ctx, name)
		if err != nil {
			return configdomain.Config{}, err
		}
		return doc.Parsed()
	})
}

func (s *Service) resolveDefault(ctx context.Context) (configdomain.Config, error) {
	return s.parsed.GetOrSet("", parsedConfigTTL, func() (configdomain.Config, error) {
		var doc configdomain.ConfigDocument
		err := s.db.WithContext(ctx).Where("is_default = ?", true).First(&doc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return configdomain.PrintDefault(), nil
			}
			return configdomain.Config{}, err
		}
		return doc.Parsed()
	})
}

func (s *Service) loadByName(ctx context.Context, name string) (*configdomain.ConfigDocument, error) {
	var doc configdomain.ConfigDocument
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, configdomain.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}
