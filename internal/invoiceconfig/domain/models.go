package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ConfigDocument is a stored render configuration profile. The application
// ships with two: "display" for the on-screen invoice view and "print" for
// PDF export. Document is the full Config value as JSON.
type ConfigDocument struct {
	ID        snowflake.ID   `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:text;not null;uniqueIndex" json:"name"`
	IsDefault bool           `gorm:"not null;default:false" json:"is_default"`
	Document  datatypes.JSON `gorm:"type:jsonb" json:"document"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (ConfigDocument) TableName() string { return "invoice_configs" }

// Parsed decodes and validates the stored document.
func (d ConfigDocument) Parsed() (Config, error) {
	cfg, err := Parse(d.Document)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
