package entity

import (
	"strings"
	"time"

	"clinic-accounts/pkg/slug"
)

// Specialization is the reference table doctors point at. Deleting a row that
// is still referenced is refused by the foreign key.
type Specialization struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(100);not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Specialization) TableName() string {
	return "specializations"
}

func (s *Specialization) Validate() *ValidationError {
	if strings.TrimSpace(s.Name) == "" {
		return invalid("name", RuleRequired, "name is required")
	}
	if s.Slug == "" && slug.Make(s.Name) == "" {
		return invalid("name", RuleRequired, "name must contain at least one letter or digit")
	}
	return nil
}

// PrepareForSave derives the slug on first save only.
func (s *Specialization) PrepareForSave(now time.Time) {
	if s.Slug == "" {
		s.Slug = slug.Make(s.Name)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
}
