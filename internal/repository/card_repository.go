package repository

import (
	"context"
	"errors"

	"github.com/meeladheeraj/todolist-Apis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CardRepository struct {
	db *gorm.DB
}

type CardRepositoryInterface interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Card, error)
	GetByStatusID(ctx context.Context, statusID uuid.UUID) ([]model.Card, error)
	Update(ctx context.Context, card *model.Card) error
	Move(ctx context.Context, card *model.Card, toStatusID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, statusID uuid.UUID, orderedIDs []uuid.UUID) error
	AddTag(ctx context.Context, cardID, tagID uuid.UUID) error
	RemoveTag(ctx context.Context, cardID, tagID uuid.UUID) error
	GetTags(ctx context.Context, cardID uuid.UUID) ([]model.Tag, error)
}

var _ CardRepositoryInterface = (*CardRepository)(nil)

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create appends the card to the end of its status column. The status row
// is locked so concurrent appends into the same column serialize instead of
// colliding on a position.
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status model.Status
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&status, "id = ?", card.StatusID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		max, err := maxCardPosition(tx, card.StatusID)
		if err != nil {
			return err
		}
		card.Position = max + 1

		return tx.Create(card).Error
	})
}

func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Preload("Tags").First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("project_id = ?", projectID).
		Order("position").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) GetByStatusID(ctx context.Context, statusID uuid.UUID) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("status_id = ?", statusID).
		Order("position").
		Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	result := r.db.WithContext(ctx).Omit("Tags").Save(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// Move reassigns the card to the end of the destination status and saves it,
// pending field edits included, in one transaction. Positions in the source
// status are left alone; the ordering there stays correct, just sparse, and
// readers only ever sort by position.
func (r *CardRepository) Move(ctx context.Context, card *model.Card, toStatusID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status model.Status
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&status, "id = ?", toStatusID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		max, err := maxCardPosition(tx, toStatusID)
		if err != nil {
			return err
		}

		card.StatusID = toStatusID
		card.Position = max + 1

		result := tx.Omit("Tags").Save(card)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
}

// Delete removes the card without compacting positions in its status.
func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM card_tags WHERE card_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Card{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCardNotFound
		}
		return nil
	})
}

// Reorder assigns position = index+1 to every card of the status in the
// given order. The list must be an exact permutation of the status's
// current card ids.
func (r *CardRepository) Reorder(ctx context.Context, statusID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status model.Status
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&status, "id = ?", statusID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		var current []uuid.UUID
		if err := tx.Model(&model.Card{}).
			Where("status_id = ?", statusID).
			Pluck("id", &current).Error; err != nil {
			return err
		}

		if !isPermutation(orderedIDs, current) {
			return ErrIncompleteOrder
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&model.Card{}).Where("id = ?", id).
				Update("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddTag attaches a tag to a card. Attaching a tag that is already present
// is a business-rule violation, not a silent no-op.
func (r *CardRepository) AddTag(ctx context.Context, cardID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("card_tags").
			Where("card_id = ? AND tag_id = ?", cardID, tagID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTagAlreadyOnCard
		}

		return tx.Exec(
			"INSERT INTO card_tags (card_id, tag_id) VALUES (?, ?)",
			cardID, tagID,
		).Error
	})
}

func (r *CardRepository) RemoveTag(ctx context.Context, cardID, tagID uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(
		"DELETE FROM card_tags WHERE card_id = ? AND tag_id = ?",
		cardID, tagID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotOnCard
	}
	return nil
}

func (r *CardRepository) GetTags(ctx context.Context, cardID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN card_tags ON card_tags.tag_id = tags.id").
		Where("card_tags.card_id = ?", cardID).
		Find(&tags).Error
	return tags, err
}

func maxCardPosition(tx *gorm.DB, statusID uuid.UUID) (int, error) {
	var maxPosition struct {
		Max int
	}
	err := tx.Model(&model.Card{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("status_id = ?", statusID).
		Scan(&maxPosition).Error
	return maxPosition.Max, err
}
