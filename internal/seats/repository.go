package seats

import (
	"context"
	"fmt"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ReplaceForEvent(ctx context.Context, eventID uuid.UUID, seats []Seat) error
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetByNumber(ctx context.Context, eventID uuid.UUID, seatNumber int) (*Seat, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ReplaceForEvent swaps the whole layout in one transaction. Reservations
// point at seat ids, so the event's reservations go with the old seats.
func (r *repository) ReplaceForEvent(ctx context.Context, eventID uuid.UUID, seats []Seat) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM reservations WHERE event_id = ?", eventID).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", eventID).Delete(&Seat{}).Error; err != nil {
			return err
		}
		if len(seats) == 0 {
			return nil
		}
		return tx.CreateInBatches(&seats, 200).Error
	})
	return apperrors.NewExternal("replace seats", err)
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("row_number ASC, seat_number ASC").
		Find(&seats).Error
	if err != nil {
		return nil, apperrors.NewExternal("list seats", err)
	}
	return seats, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	if err := r.db.WithContext(ctx).First(&seat, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("seat", id.String())
		}
		return nil, apperrors.NewExternal("get seat", err)
	}
	return &seat, nil
}

func (r *repository) GetByNumber(ctx context.Context, eventID uuid.UUID, seatNumber int) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND seat_number = ?", eventID, seatNumber).
		First(&seat).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("seat", fmt.Sprintf("%s#%d", eventID, seatNumber))
		}
		return nil, apperrors.NewExternal("get seat by number", err)
	}
	return &seat, nil
}

func (r *repository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&Seat{}).Error
	return apperrors.NewExternal("delete seats", err)
}
