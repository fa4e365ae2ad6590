package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/JohnBartlett/bluejay-acct/pkg/format"
)

// Parse decodes a stored JSON config document. Unknown fields are rejected so
// a typo in a stored document surfaces instead of silently defaulting.
func Parse(raw []byte) (Config, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

var validPageSizes = map[string]bool{"letter": true, "a4": true}

var validPageNumberPositions = map[string]bool{"left": true, "center": true, "right": true}

// Validate enforces the structural requirements for enabled features only.
// Config blocks belonging to disabled sections may be absent or zero without
// error. All failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Layout.Margin < 0 {
		return fmt.Errorf("%w: layout.margin must not be negative", ErrInvalidConfig)
	}
	if c.Layout.PageSize != "" && !validPageSizes[c.Layout.PageSize] {
		return fmt.Errorf("%w: unsupported layout.pageSize %q", ErrInvalidConfig, c.Layout.PageSize)
	}
	if o := c.Layout.Orientation; o != "" && o != "portrait" && o != "landscape" {
		return fmt.Errorf("%w: unsupported layout.orientation %q", ErrInvalidConfig, o)
	}

	if c.Sections.ItemsTable {
		if len(c.Table.Columns) == 0 {
			return fmt.Errorf("%w: table.columns required when the items table is enabled", ErrInvalidConfig)
		}
		for _, col := range c.Table.Columns {
			if !canonicalColumn(col) {
				return fmt.Errorf("%w: unknown table column %q", ErrInvalidConfig, col)
			}
		}
	}

	if c.Currency.DecimalPlaces < 0 || c.Currency.DecimalPlaces > 6 {
		return fmt.Errorf("%w: currency.decimalPlaces out of range", ErrInvalidConfig)
	}
	if p := c.Currency.Placement; p != "" && p != "before" && p != "after" {
		return fmt.Errorf("%w: currency.placement must be before or after", ErrInvalidConfig)
	}

	if w := c.Watermark; w != nil && w.Enabled {
		if w.Text == "" {
			return fmt.Errorf("%w: watermark.text required when the watermark is enabled", ErrInvalidConfig)
		}
		if w.Opacity < 0 || w.Opacity > 1 {
			return fmt.Errorf("%w: watermark.opacity must be within [0, 1]", ErrInvalidConfig)
		}
	}

	if p := c.Print; p != nil && p.IncludePageNumbers {
		if !validPageNumberPositions[p.PageNumberPosition] {
			return fmt.Errorf("%w: print.pageNumberPosition must be left, center or right", ErrInvalidConfig)
		}
	}
	return nil
}

func canonicalColumn(name string) bool {
	for _, c := range CanonicalColumns {
		if c == name {
			return true
		}
	}
	return false
}

// DateLayoutOK reports whether the configured date pattern is usable. The
// renderer still falls back at draw time; this is for upfront validation in
// the config editor.
func (c Config) DateLayoutOK() bool {
	_, err := format.DateLayout(c.DateFormat.Format)
	return err == nil
}
