package model

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	StatusID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"status_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid" json:"assigned_to,omitempty"`
	Reporter    uuid.UUID  `gorm:"type:uuid;not null" json:"reporter"`
	Priority    Priority   `gorm:"not null;default:'Medium';check:priority IN ('High', 'Medium', 'Low')" json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Estimate    *float64   `json:"estimate,omitempty"`
	Position    int        `gorm:"not null" json:"position"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Project  Project `gorm:"foreignKey:ProjectID" json:"-"`
	Status   Status  `gorm:"foreignKey:StatusID" json:"-"`
	Assignee *User   `gorm:"foreignKey:AssignedTo" json:"-"`
	Tags     []Tag   `gorm:"many2many:card_tags" json:"tags,omitempty"`
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
