package auctions

import (
	"context"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, bid *AuctionBid) error
	GetByID(ctx context.Context, id uuid.UUID) (*AuctionBid, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]AuctionBid, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bid *AuctionBid) error {
	return apperrors.NewExternal("create bid", r.db.WithContext(ctx).Create(bid).Error)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*AuctionBid, error) {
	var bid AuctionBid
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&bid).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("bid", id.String())
		}
		return nil, apperrors.NewExternal("get bid", err)
	}
	return &bid, nil
}

// ListByEvent returns the event's bids in rank order
func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]AuctionBid, error) {
	var bids []AuctionBid
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("amount DESC, created_at ASC, id ASC").
		Find(&bids).Error
	if err != nil {
		return nil, apperrors.NewExternal("list bids", err)
	}
	return bids, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AuctionBid{})
	if result.Error != nil {
		return apperrors.NewExternal("delete bid", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("bid", id.String())
	}
	return nil
}
