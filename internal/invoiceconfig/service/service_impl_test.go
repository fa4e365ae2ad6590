package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JohnBartlett/bluejay-acct/internal/cache"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
)

func setupConfigService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&configdomain.ConfigDocument{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return &Service{
		db:     db,
		log:    zap.NewNop(),
		genID:  node,
		parsed: cache.NewTTLCache[string, configdomain.Config](),
	}
}

func TestSaveAndResolve(t *testing.T) {
	svc := setupConfigService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, configdomain.SaveRequest{
		Name:   "display",
		Config: configdomain.Default(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := svc.Resolve(ctx, "display")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Layout.PageSize != "letter" {
		t.Fatalf("resolved page size %q", cfg.Layout.PageSize)
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	svc := setupConfigService(t)

	bad := configdomain.Default()
	bad.Layout.Margin = -5
	_, err := svc.Save(context.Background(), configdomain.SaveRequest{Name: "display", Config: bad})
	if !errors.Is(err, configdomain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPatchUpdatesStoredDocument(t *testing.T) {
	svc := setupConfigService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, configdomain.SaveRequest{
		Name:   "print",
		Config: configdomain.PrintDefault(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Patch(ctx, configdomain.PatchRequest{
		Name:  "print",
		Path:  "layout.margin",
		Value: 25,
	}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	cfg, err := svc.Resolve(ctx, "print")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Layout.Margin != 25 {
		t.Fatalf("margin %v after patch", cfg.Layout.Margin)
	}
}

func TestPatchRejectsInvalidResult(t *testing.T) {
	svc := setupConfigService(t)
	ctx := context.Background()

	if _, err := svc.Save(ctx, configdomain.SaveRequest{
		Name:   "display",
		Config: configdomain.Default(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := svc.Patch(ctx, configdomain.PatchRequest{
		Name:  "display",
		Path:  "layout.pageSize",
		Value: "tabloid",
	})
	if !errors.Is(err, configdomain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	// The stored document is untouched by the failed patch.
	cfg, err := svc.Resolve(ctx, "display")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Layout.PageSize != "letter" {
		t.Fatalf("page size %q after failed patch", cfg.Layout.PageSize)
	}
}

func TestResolveBlankNameFallsBackToPrintDefault(t *testing.T) {
	svc := setupConfigService(t)

	cfg, err := svc.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Print == nil || !cfg.Print.IncludePageNumbers {
		t.Fatal("expected built-in print profile")
	}
}

func TestResolveUnknownName(t *testing.T) {
	svc := setupConfigService(t)

	_, err := svc.Resolve(context.Background(), "missing")
	if !errors.Is(err, configdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
