package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repositorio sobre store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.s.newID()
	u.CreatedAt = r.s.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	for mid, m := range r.s.movements {
		if m.UserID == id {
			m.UserID = 0
			r.s.movements[mid] = m
		}
	}
	return nil
}
