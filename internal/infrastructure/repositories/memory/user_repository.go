package memory

import (
	"context"
	"strings"
	"sync"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/ports"

	"github.com/google/uuid"
)

type MemoryUserRepository struct {
	users map[string]*domain.User // keyed by lowercased email
	mu    sync.RWMutex
}

func NewMemoryUserRepository() ports.UserRepository {
	return &MemoryUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[strings.ToLower(email)]
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.users[key]; exists {
		return domain.ErrEmailTaken
	}

	if user.ID == "" {
		user.ID = domain.UserID(uuid.New().String())
	}

	copied := *user
	r.users[key] = &copied
	return nil
}
