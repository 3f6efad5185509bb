package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
)

type userRepository struct{ s *Store }

func (r *userRepository) emailTaken(email string, except uuid.UUID) bool {
	for id, u := range r.s.data.users {
		if u.Email == email && id != except {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(user.Email, uuid.Nil) {
		return repository.ErrDuplicate
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = r.s.stamp()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(ctx context.Context, page repository.Page) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]models.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return window(users, page), nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.data.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return repository.ErrDuplicate
	}
	current.Name = user.Name
	current.Email = user.Email
	current.Password = user.Password
	current.Role = user.Role
	r.s.data.users[user.ID] = current
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.users, id)
	return nil
}
