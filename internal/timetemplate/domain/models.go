package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TimeTemplate is a reusable description plus optional hourly rate for Time
// line items. Applying one to an invoice copies the values; templates are
// never referenced after that.
type TimeTemplate struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Description string       `gorm:"type:text;not null" json:"description"`
	HourlyRate  *float64     `json:"hourly_rate,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (TimeTemplate) TableName() string {
	return "time_entry_templates"
}
