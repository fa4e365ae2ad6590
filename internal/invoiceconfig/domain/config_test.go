package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if err := PrintDefault().Validate(); err != nil {
		t.Fatalf("print config should validate: %v", err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	raw, err := json.Marshal(PrintDefault())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Print == nil || !cfg.Print.IncludePageNumbers {
		t.Fatalf("round trip lost print block: %+v", cfg.Print)
	}
	if cfg.Colors.Primary != (RGB{41, 99, 235}) {
		t.Fatalf("round trip lost colors: %v", cfg.Colors.Primary)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte(`{"colrs": {}}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidateEnabledSectionRequirements(t *testing.T) {
	cfg := Default()
	cfg.Table.Columns = nil
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("items table without columns should fail, got %v", err)
	}

	// Disabling the section lifts the requirement.
	cfg.Sections.ItemsTable = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled section config may be absent: %v", err)
	}
}

func TestValidateWatermark(t *testing.T) {
	cfg := Default()
	cfg.Watermark = &Watermark{Enabled: true, Opacity: 0.2}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("enabled watermark without text should fail, got %v", err)
	}
	cfg.Watermark.Text = "DRAFT"
	cfg.Watermark.Opacity = 1.5
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("opacity beyond 1 should fail, got %v", err)
	}
	cfg.Watermark.Opacity = 0.15
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid watermark rejected: %v", err)
	}
}

func TestWithUpdatesCopy(t *testing.T) {
	base := Default()
	updated, err := base.With("currency.symbol", "€")
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if updated.Currency.Symbol != "€" {
		t.Fatalf("update not applied: %q", updated.Currency.Symbol)
	}
	if base.Currency.Symbol != "$" {
		t.Fatalf("receiver mutated: %q", base.Currency.Symbol)
	}
}

func TestWithAllocatesOptionalBlocks(t *testing.T) {
	base := Default()
	if base.Watermark != nil {
		t.Fatalf("precondition: default has no watermark block")
	}
	updated, err := base.With("watermark.text", "DRAFT")
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if updated.Watermark == nil || updated.Watermark.Text != "DRAFT" {
		t.Fatalf("optional block not allocated: %+v", updated.Watermark)
	}
	if base.Watermark != nil {
		t.Fatalf("receiver mutated")
	}
}

func TestWithNestedAndTypedPaths(t *testing.T) {
	base := Default()
	updated, err := base.With("typography.total.size", 14)
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if updated.Typography.Total.Size != 14 {
		t.Fatalf("nested update lost: %v", updated.Typography.Total.Size)
	}

	updated, err = base.With("table.showAlternatingRows", false)
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if updated.Table.ShowAlternatingRows {
		t.Fatalf("bool update lost")
	}

	updated, err = base.With("colors.primary", []int{10, 20, 30})
	if err != nil {
		t.Fatalf("with: %v", err)
	}
	if updated.Colors.Primary != (RGB{10, 20, 30}) {
		t.Fatalf("color update lost: %v", updated.Colors.Primary)
	}
}

func TestWithRejectsUnknownPath(t *testing.T) {
	if _, err := Default().With("currency.nope", 1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Default().With("", 1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for empty path, got %v", err)
	}
}

func TestWithValidatesResult(t *testing.T) {
	if _, err := Default().With("currency.decimalPlaces", -1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("invalid result should be rejected, got %v", err)
	}
}
