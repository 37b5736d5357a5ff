package model

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_project_tag_name" json:"project_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_project_tag_name" json:"name"`
	Color     string    `gorm:"not null;default:'#3498db'" json:"color"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Cards   []Card  `gorm:"many2many:card_tags" json:"-"`
}
