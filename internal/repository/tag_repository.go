package repository

import (
	"context"
	"errors"

	"github.com/meeladheeraj/todolist-Apis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

type TagRepositoryInterface interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Tag, error)
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ TagRepositoryInterface = (*TagRepository)(nil)

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create enforces name uniqueness per project before inserting.
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Tag{}).
			Where("project_id = ? AND name = ?", tag.ProjectID, tag.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTagExists
		}
		return tx.Create(tag).Error
	})
}

func (r *TagRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("name").
		Find(&tags).Error
	return tags, err
}

func (r *TagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete detaches the tag from every card before removing it.
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM card_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Tag{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}
		return nil
	})
}
