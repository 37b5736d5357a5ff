package model

import (
	"github.com/google/uuid"
)

type Status struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_project_status_name" json:"project_id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_project_status_name" json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Position    int       `gorm:"not null" json:"position"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// DefaultStatusNames are provisioned, in order, when a project is created.
var DefaultStatusNames = []string{"To Do", "In Progress", "Done"}
