package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

type UserService struct {
	store  repository.Store
	hasher utils.PasswordHasher
	media  *MediaService
}

func NewUserService(store repository.Store, hasher utils.PasswordHasher, media *MediaService) *UserService {
	return &UserService{store: store, hasher: hasher, media: media}
}

func (s *UserService) List(ctx context.Context, caller *models.User, page repository.Page) ([]models.User, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx, page)
}

func (s *UserService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.User, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

// Update lets users edit themselves; only admins may change a role.
func (s *UserService) Update(ctx context.Context, caller *models.User, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	if err := RequireOwnerOrAdmin(id, caller); err != nil {
		return nil, err
	}
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name", "must not be empty")
		}
		user.Name = name
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
				return nil, ErrEmailExists
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hash
	}
	if in.Role != nil && *in.Role != user.Role {
		if err := RequireAdmin(caller); err != nil {
			return nil, err
		}
		if *in.Role != models.RoleUser && *in.Role != models.RoleAdmin {
			return nil, invalid("role", "must be %q or %q", models.RoleUser, models.RoleAdmin)
		}
		user.Role = *in.Role
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailExists
		}
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

// Delete removes the user with their reports, media blobs, verifications and sessions.
func (s *UserService) Delete(ctx context.Context, caller *models.User, id uuid.UUID) error {
	if err := RequireAdmin(caller); err != nil {
		return err
	}
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			return notFound(err, ErrUserNotFound)
		}
		reports, err := tx.Reports().ListByUser(ctx, id)
		if err != nil {
			return err
		}
		for _, report := range reports {
			if err := purgeReport(ctx, tx, s.media, report.ID); err != nil {
				return err
			}
		}
		if err := tx.Verifications().DeleteByAdmin(ctx, id); err != nil {
			return err
		}
		if err := tx.Sessions().DeleteByUser(ctx, id); err != nil {
			return err
		}
		return notFound(tx.Users().Delete(ctx, id), ErrUserNotFound)
	})
}
