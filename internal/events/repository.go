package events

import (
	"context"
	"time"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetActiveBySlug(ctx context.Context, slug string) (*Event, error)
	GetMostRecentActive(ctx context.Context) (*Event, error)
	List(ctx context.Context, query EventListQuery, onlyID *uuid.UUID) ([]Event, int64, error)
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	err := r.db.WithContext(ctx).Create(event).Error
	if database.IsUniqueViolation(err) {
		return database.ErrDuplicate
	}
	return apperrors.NewExternal("create event", err)
}

func (r *repository) Save(ctx context.Context, event *Event) error {
	err := r.db.WithContext(ctx).Save(event).Error
	if database.IsUniqueViolation(err) {
		return database.ErrDuplicate
	}
	return apperrors.NewExternal("update event", err)
}

// Delete removes the event and everything hanging off it in one transaction
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			"DELETE FROM reservations WHERE event_id = ?",
			"DELETE FROM auction_bids WHERE event_id = ?",
			"DELETE FROM seats WHERE event_id = ?",
			"DELETE FROM admins WHERE event_id = ?",
		} {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&Event{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return apperrors.NewExternal("delete event", err)
	}
	if affected == 0 {
		return apperrors.NewNotFound("event", id.String())
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("event", id.String())
		}
		return nil, apperrors.NewExternal("get event", err)
	}
	return &event, nil
}

func (r *repository) GetActiveBySlug(ctx context.Context, slug string) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&event).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("event", slug)
		}
		return nil, apperrors.NewExternal("get event by slug", err)
	}
	return &event, nil
}

func (r *repository) GetMostRecentActive(ctx context.Context) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&event).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperrors.NewNotFound("event", "active")
		}
		return nil, apperrors.NewExternal("get active event", err)
	}
	return &event, nil
}

func (r *repository) List(ctx context.Context, query EventListQuery, onlyID *uuid.UUID) ([]Event, int64, error) {
	db := r.db.WithContext(ctx).Model(&Event{})
	if query.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if onlyID != nil {
		db = db.Where("id = ?", *onlyID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewExternal("count events", err)
	}

	var events []Event
	err := db.Order("created_at DESC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, apperrors.NewExternal("list events", err)
	}
	return events, total, nil
}

func (r *repository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Event{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, apperrors.NewExternal("check slug", err)
	}
	return count > 0, nil
}

func (r *repository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("is_active = ? AND auto_deactivate = ? AND expiration_date IS NOT NULL AND expiration_date < ?", true, true, now).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now})
	if res.Error != nil {
		return 0, apperrors.NewExternal("deactivate expired events", res.Error)
	}
	return res.RowsAffected, nil
}
