package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only audit record of a successful mutation.
// Rows are never updated or deleted.
type Activity struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null" json:"user_id"`
	ProjectID uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	CardID    *uuid.UUID      `gorm:"type:uuid;index" json:"card_id,omitempty"`
	Action    Action          `gorm:"not null" json:"action"`
	Details   ActivityDetails `gorm:"type:jsonb" json:"details"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

type Action string

const (
	ActionCreatedProject     Action = "created_project"
	ActionUpdatedProject     Action = "updated_project"
	ActionDeletedProject     Action = "deleted_project"
	ActionAddedMember        Action = "added_member"
	ActionRemovedMember      Action = "removed_member"
	ActionCreatedStatus      Action = "created_status"
	ActionUpdatedStatus      Action = "updated_status"
	ActionDeletedStatus      Action = "deleted_status"
	ActionReorderedStatuses  Action = "reordered_statuses"
	ActionCreatedCard        Action = "created_card"
	ActionUpdatedCard        Action = "updated_card"
	ActionMovedCard          Action = "moved_card"
	ActionDeletedCard        Action = "deleted_card"
	ActionReorderedCards     Action = "reordered_cards"
	ActionCreatedTag         Action = "created_tag"
	ActionUpdatedTag         Action = "updated_tag"
	ActionDeletedTag         Action = "deleted_tag"
	ActionAddedTagToCard     Action = "added_tag_to_card"
	ActionRemovedTagFromCard Action = "removed_tag_from_card"
	ActionAddedComment       Action = "added_comment"
	ActionUpdatedComment     Action = "updated_comment"
	ActionDeletedComment     Action = "deleted_comment"
)

var knownActions = map[Action]bool{
	ActionCreatedProject:     true,
	ActionUpdatedProject:     true,
	ActionDeletedProject:     true,
	ActionAddedMember:        true,
	ActionRemovedMember:      true,
	ActionCreatedStatus:      true,
	ActionUpdatedStatus:      true,
	ActionDeletedStatus:      true,
	ActionReorderedStatuses:  true,
	ActionCreatedCard:        true,
	ActionUpdatedCard:        true,
	ActionMovedCard:          true,
	ActionDeletedCard:        true,
	ActionReorderedCards:     true,
	ActionCreatedTag:         true,
	ActionUpdatedTag:         true,
	ActionDeletedTag:         true,
	ActionAddedTagToCard:     true,
	ActionRemovedTagFromCard: true,
	ActionAddedComment:       true,
	ActionUpdatedComment:     true,
	ActionDeletedComment:     true,
}

func (a Action) Valid() bool {
	return knownActions[a]
}

// ActivityDetails carries the human-readable payload of an activity record.
// Each action kind fills only the fields it produces; everything else stays
// empty and is omitted from the stored JSON.
type ActivityDetails struct {
	ProjectName string      `json:"project_name,omitempty"`
	StatusName  string      `json:"status_name,omitempty"`
	OldStatus   string      `json:"old_status,omitempty"`
	NewStatus   string      `json:"new_status,omitempty"`
	CardTitle   string      `json:"card_title,omitempty"`
	TagName     string      `json:"tag_name,omitempty"`
	Username    string      `json:"username,omitempty"`
	Role        Role        `json:"role,omitempty"`
	Order       []uuid.UUID `json:"order,omitempty"`
}

func (d ActivityDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *ActivityDetails) Scan(value interface{}) error {
	if value == nil {
		*d = ActivityDetails{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	}
	return errors.New("unsupported type for ActivityDetails")
}
