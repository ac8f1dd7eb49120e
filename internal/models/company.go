package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company groups games and is keyed by a unique, human-readable slug.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Slug      string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CompanyWithCount is a company row plus the number of games that reference it.
// GameCount is computed at read time and never stored.
type CompanyWithCount struct {
	Company   `gorm:"embedded"`
	GameCount int64 `gorm:"column:game_count" json:"game_count"`
}
