package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// InMemoryRepository keeps users in process memory. It exists for tests and
// local development. The uniqueness check and the insert run under one
// mutex, giving the same atomicity the Postgres constraints provide.
type InMemoryRepository struct {
	mu      sync.Mutex
	byID    map[string]models.User
	byName  map[string]string // username -> id
	byEmail map[string]string // email -> id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]models.User),
		byName:  make(map[string]string),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()

	r.byID[stored.ID] = stored
	r.byName[stored.UserName] = stored.ID
	r.byEmail[stored.Email] = stored.ID

	return &stored, nil
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &user, nil
}
