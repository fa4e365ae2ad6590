package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Company is the issuing business profile. There is exactly one row; the
// service keeps it that way.
type Company struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Address   string       `json:"address"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	LogoText  string       `json:"logo_text"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (Company) TableName() string {
	return "company_profile"
}
