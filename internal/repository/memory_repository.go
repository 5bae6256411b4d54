package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pokewiki/internal/domain"
)

// memoryUserRepository keeps accounts in process memory. Used when no
// POSTGRES_DSN is configured (local development) and by tests.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMemoryUserRepository returns an in-memory implementation of
// UserRepository with the same uniqueness semantics as the SQL store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findByEmailLocked(user.Email) != nil {
		return ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, id string, fields domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	if fields.Email != nil {
		if existing := r.findByEmailLocked(*fields.Email); existing != nil && existing.ID != id {
			return nil, ErrDuplicateEmail
		}
		stored.Email = *fields.Email
	}
	if fields.FullName != nil {
		stored.FullName = *fields.FullName
	}
	if fields.PasswordHash != nil {
		stored.PasswordHash = *fields.PasswordHash
	}
	stored.UpdatedAt = time.Now().UTC()

	updated := *stored
	return &updated, nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user := *stored
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.findByEmailLocked(email)
	if stored == nil {
		return nil, pgx.ErrNoRows
	}
	user := *stored
	return &user, nil
}

func (r *memoryUserRepository) CountByEmail(_ context.Context, email string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			count++
		}
	}
	return count, nil
}

func (r *memoryUserRepository) findByEmailLocked(email string) *domain.User {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}
