package reservations

import (
	"context"
	"time"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Insert is the single atomic write behind every booking. A taken
	// (seat_id, session_id) pair returns database.ErrDuplicate.
	Insert(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	FindBySeatSession(ctx context.Context, seatID uuid.UUID, sessionID string) (*Reservation, error)
	ListBySeat(ctx context.Context, seatID uuid.UUID) ([]Reservation, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Reservation, error)
	// Confirm moves a reserved row to occupied. It reports false when no
	// reserved row with that id exists.
	Confirm(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// Delete removes the row and returns it, NotFound when it is already gone
	Delete(ctx context.Context, id uuid.UUID) (*Reservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, res *Reservation) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
	if database.IsUniqueViolation(err) {
		return database.ErrDuplicate
	}
	return apperrors.NewExternal("insert reservation", err)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var res Reservation
	err := r.db.WithContext(ctx).Preload("Seat").Where("id = ?", id).First(&res).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("reservation", id.String())
		}
		return nil, apperrors.NewExternal("get reservation", err)
	}
	return &res, nil
}

func (r *repository) FindBySeatSession(ctx context.Context, seatID uuid.UUID, sessionID string) (*Reservation, error) {
	var res Reservation
	err := r.db.WithContext(ctx).
		Where("seat_id = ? AND session_id = ?", seatID, sessionID).
		First(&res).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("reservation", seatID.String()+"/"+sessionID)
		}
		return nil, apperrors.NewExternal("find reservation", err)
	}
	return &res, nil
}

func (r *repository) ListBySeat(ctx context.Context, seatID uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).Where("seat_id = ?", seatID).Find(&list).Error
	if err != nil {
		return nil, apperrors.NewExternal("list reservations by seat", err)
	}
	return list, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Preload("Seat").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, apperrors.NewExternal("list reservations", err)
	}
	return list, nil
}

func (r *repository) Confirm(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ? AND status = ?", id, StatusReserved).
		Updates(map[string]interface{}{
			"status":       StatusOccupied,
			"confirmed_at": at,
			"updated_at":   at,
		})
	if result.Error != nil {
		return false, apperrors.NewExternal("confirm reservation", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var deleted []Reservation
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&deleted)
	if result.Error != nil {
		return nil, apperrors.NewExternal("delete reservation", result.Error)
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		return nil, apperrors.NewNotFound("reservation", id.String())
	}
	return &deleted[0], nil
}
