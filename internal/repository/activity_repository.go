package repository

import (
	"context"
	"fmt"

	"github.com/meeladheeraj/todolist-Apis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository is a pure appender: records are written once with a
// server-assigned timestamp and never touched again.
type ActivityRepository struct {
	db *gorm.DB
}

type ActivityRepositoryInterface interface {
	Record(ctx context.Context, userID, projectID uuid.UUID, cardID *uuid.UUID, action model.Action, details model.ActivityDetails) error
	ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) ([]model.Activity, int64, error)
	ListByCard(ctx context.Context, cardID uuid.UUID, page, limit int) ([]model.Activity, int64, error)
}

var _ ActivityRepositoryInterface = (*ActivityRepository)(nil)

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Record appends one audit entry. An action outside the closed enumeration
// is a bug in the caller, not user input, so it fails loudly.
func (r *ActivityRepository) Record(ctx context.Context, userID, projectID uuid.UUID, cardID *uuid.UUID, action model.Action, details model.ActivityDetails) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	activity := model.Activity{
		UserID:    userID,
		ProjectID: projectID,
		CardID:    cardID,
		Action:    action,
		Details:   details,
	}
	return r.db.WithContext(ctx).Create(&activity).Error
}

func (r *ActivityRepository) ListByProject(ctx context.Context, projectID uuid.UUID, page, limit int) ([]model.Activity, int64, error) {
	return r.list(ctx, "project_id = ?", projectID, page, limit)
}

func (r *ActivityRepository) ListByCard(ctx context.Context, cardID uuid.UUID, page, limit int) ([]model.Activity, int64, error) {
	return r.list(ctx, "card_id = ?", cardID, page, limit)
}

func (r *ActivityRepository) list(ctx context.Context, query string, arg uuid.UUID, page, limit int) ([]model.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where(query, arg).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activities).Error
	return activities, total, err
}
