package users

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/google/uuid"
)

type memoryRecord struct {
	user models.User
	seq  uint64
}

// InMemoryRepository keeps users in a map guarded by a mutex. Email
// uniqueness is checked and enforced under the same lock as the insert.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*memoryRecord
	seq   uint64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*memoryRecord)}
}

func (r *InMemoryRepository) emailTaken(email, exceptID string) bool {
	for id, rec := range r.users {
		if id != exceptID && rec.user.Email == email {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return nil, common.ErrAlreadyExists
	}

	r.seq++
	user.ID = uuid.NewString()
	r.users[user.ID] = &memoryRecord{user: *user, seq: r.seq}

	return user, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := rec.user
	return &u, nil
}

// find returns the earliest inserted user matching pred.
func (r *InMemoryRepository) find(pred func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *memoryRecord
	for _, rec := range r.users {
		if pred(&rec.user) && (found == nil || rec.seq < found.seq) {
			found = rec
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	u := found.user
	return &u, nil
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *InMemoryRepository) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Mobile == mobile })
}

// List orders by CreatedAt descending; equal timestamps fall back to
// reverse insertion order.
func (r *InMemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	recs := make([]memoryRecord, 0, len(r.users))
	for _, rec := range r.users {
		recs = append(recs, *rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.user.CreatedAt.Equal(b.user.CreatedAt) {
			return a.user.CreatedAt.After(b.user.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]*models.User, 0, len(recs))
	for i := range recs {
		result = append(result, &recs[i].user)
	}
	return result, nil
}

func (r *InMemoryRepository) modify(id string, fn func(*models.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	return fn(&rec.user)
}

func (r *InMemoryRepository) Update(ctx context.Context, user *models.User) error {
	return r.modify(user.ID, func(u *models.User) error {
		if r.emailTaken(user.Email, user.ID) {
			return common.ErrAlreadyExists
		}
		u.Name = user.Name
		u.Email = user.Email
		u.Mobile = user.Mobile
		u.Password = user.Password
		return nil
	})
}

func (r *InMemoryRepository) SetToken(ctx context.Context, id, token string) error {
	return r.modify(id, func(u *models.User) error {
		u.Token = token
		return nil
	})
}

func (r *InMemoryRepository) SetStatus(ctx context.Context, id string, status bool) error {
	return r.modify(id, func(u *models.User) error {
		u.Status = status
		return nil
	})
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *InMemoryRepository) Ping(ctx context.Context) error {
	return nil
}
