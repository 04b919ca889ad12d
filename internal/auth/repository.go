package auth

import (
	"context"
	"errors"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAdminNotFound = errors.New("admin not found")

type Repository interface {
	Create(ctx context.Context, admin *Admin) error
	Save(ctx context.Context, admin *Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByEvent(ctx context.Context, eventID uuid.UUID) (*Admin, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, admin *Admin) error {
	err := r.db.WithContext(ctx).Create(admin).Error
	if database.IsUniqueViolation(err) {
		return apperrors.NewConflict("admin username", admin.Username)
	}
	return apperrors.NewExternal("create admin", err)
}

func (r *repository) Save(ctx context.Context, admin *Admin) error {
	err := r.db.WithContext(ctx).Save(admin).Error
	if database.IsUniqueViolation(err) {
		return apperrors.NewConflict("admin username", admin.Username)
	}
	return apperrors.NewExternal("update admin", err)
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *repository) GetByEvent(ctx context.Context, eventID uuid.UUID) (*Admin, error) {
	return r.first(ctx, "event_id = ? AND role = ?", eventID, "event_admin")
}

func (r *repository) first(ctx context.Context, query string, args ...interface{}) (*Admin, error) {
	var admin Admin
	if err := r.db.WithContext(ctx).Where(query, args...).First(&admin).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrAdminNotFound
		}
		return nil, apperrors.NewExternal("get admin", err)
	}
	return &admin, nil
}
