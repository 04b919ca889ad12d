package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*identity.TokenPair, error)
	Me(ctx context.Context, p *identity.Principal) (*Admin, error)
	ChangePassword(ctx context.Context, p *identity.Principal, req *ChangePasswordRequest) error
	UpsertEventAdmin(ctx context.Context, eventID uuid.UUID, username, password, email, eventName string) error
	EnsureSuperAdmin(ctx context.Context, username, password, email string) (*Admin, error)
}

type service struct {
	repo   Repository
	issuer *identity.TokenIssuer
	log    *logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, issuer *identity.TokenIssuer) Service {
	return &service{
		repo:   repo,
		issuer: issuer,
		log:    logger.GetDefault(),
		now:    time.Now,
	}
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	admin, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			s.log.LogAuthFailure(ctx, "unknown username", "")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.log.LogAuthFailure(ctx, "password mismatch", "")
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.Issue(admin.Principal())
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	now := s.now()
	admin.LastLoginAt = &now
	if err := s.repo.Save(ctx, admin); err != nil {
		s.log.WithError(err).Warn("failed to record last login", "admin_id", admin.ID.String())
	}

	s.log.LogAuthSuccess(ctx, admin.ID.String(), "password")
	return &AuthResponse{Admin: admin.ToResponse(), TokenPair: *pair}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*identity.TokenPair, error) {
	claimed, err := s.issuer.Parse(refreshToken, identity.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Re-read the account so role or event changes take effect on refresh
	admin, err := s.repo.GetByID(ctx, claimed.AdminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, admin.ID.String(), "refresh")
	return s.issuer.Issue(admin.Principal())
}

func (s *service) Me(ctx context.Context, p *identity.Principal) (*Admin, error) {
	if p == nil {
		return nil, ErrInvalidToken
	}
	admin, err := s.repo.GetByID(ctx, p.AdminID)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, apperrors.NewNotFound("admin", p.AdminID.String())
	}
	return admin, err
}

func (s *service) ChangePassword(ctx context.Context, p *identity.Principal, req *ChangePasswordRequest) error {
	admin, err := s.Me(ctx, p)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	return s.repo.Save(ctx, admin)
}

// UpsertEventAdmin creates or refreshes the admin account bound to an event.
// An empty password keeps the existing hash.
func (s *service) UpsertEventAdmin(ctx context.Context, eventID uuid.UUID, username, password, email, eventName string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperrors.NewValidation("admin username is required")
	}
	if email == "" {
		email = username + "@event.local"
	}
	fullName := "Admin - " + eventName

	existing, err := s.repo.GetByEvent(ctx, eventID)
	if err != nil && !errors.Is(err, ErrAdminNotFound) {
		return err
	}

	if existing == nil {
		if password == "" {
			return apperrors.NewValidation("admin password is required")
		}
		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		return s.repo.Create(ctx, &Admin{
			Username:     username,
			PasswordHash: hash,
			Email:        email,
			FullName:     fullName,
			Role:         identity.RoleEventAdmin,
			EventID:      &eventID,
		})
	}

	existing.Username = username
	existing.Email = email
	existing.FullName = fullName
	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		existing.PasswordHash = hash
	}
	return s.repo.Save(ctx, existing)
}

// EnsureSuperAdmin creates the super admin account if the username is free
func (s *service) EnsureSuperAdmin(ctx context.Context, username, password, email string) (*Admin, error) {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		if existing.Role != identity.RoleSuperAdmin {
			return nil, apperrors.NewConflict("admin username", existing.Username)
		}
		return existing, nil
	}
	if !errors.Is(err, ErrAdminNotFound) {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &Admin{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FullName:     "Super Admin",
		Role:         identity.RoleSuperAdmin,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", apperrors.NewValidation("password must be at least 6 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
