package repository

import (
	"context"
	"errors"

	"github.com/meeladheeraj/todolist-Apis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatusRepository struct {
	db *gorm.DB
}

type StatusRepositoryInterface interface {
	Create(ctx context.Context, status *model.Status) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Status, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Status, error)
	GetFirst(ctx context.Context, projectID uuid.UUID) (*model.Status, error)
	Update(ctx context.Context, status *model.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error
}

var _ StatusRepositoryInterface = (*StatusRepository)(nil)

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Create appends the status to the end of its project's column order. The
// project row is locked for the duration of the transaction so two
// concurrent appends cannot compute the same position.
func (r *StatusRepository) Create(ctx context.Context, status *model.Status) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, "id = ?", status.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.Status{}).
			Where("project_id = ? AND name = ?", status.ProjectID, status.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrStatusExists
		}

		max, err := maxStatusPosition(tx, status.ProjectID)
		if err != nil {
			return err
		}
		status.Position = max + 1

		return tx.Create(status).Error
	})
}

func (r *StatusRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Status, error) {
	var status model.Status
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *StatusRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Status, error) {
	var statuses []model.Status
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position").
		Find(&statuses).Error
	return statuses, err
}

// GetFirst returns the lowest-positioned status of the project. Cards
// created without an explicit status land there.
func (r *StatusRepository) GetFirst(ctx context.Context, projectID uuid.UUID) (*model.Status, error) {
	var status model.Status
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position").
		First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Update saves the status, rejecting a rename that collides with another
// status of the same project.
func (r *StatusRepository) Update(ctx context.Context, status *model.Status) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Status{}).
			Where("project_id = ? AND name = ? AND id <> ?", status.ProjectID, status.Name, status.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrStatusExists
		}

		return tx.Save(status).Error
	})
}

// Delete refuses to remove the project's last remaining status. The project
// row is locked so a concurrent delete cannot slip the count below one.
func (r *StatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status model.Status
		if err := tx.First(&status, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		var project model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, "id = ?", status.ProjectID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Status{}).
			Where("project_id = ?", status.ProjectID).
			Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastStatus
		}

		return tx.Delete(&model.Status{}, "id = ?", id).Error
	})
}

// Reorder assigns position = index+1 to every status in the given order.
// The list must be an exact permutation of the project's current status ids;
// the whole batch commits or none of it does.
func (r *StatusRepository) Reorder(ctx context.Context, projectID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, "id = ?", projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		var current []uuid.UUID
		if err := tx.Model(&model.Status{}).
			Where("project_id = ?", projectID).
			Pluck("id", &current).Error; err != nil {
			return err
		}

		if !isPermutation(orderedIDs, current) {
			return ErrIncompleteOrder
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&model.Status{}).Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func maxStatusPosition(tx *gorm.DB, projectID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := tx.Model(&model.Status{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("project_id = ?", projectID).
		Scan(&maxPosition).Error
	return maxPosition.Max, err
}
