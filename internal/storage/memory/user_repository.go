package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

// userRepositoryInMemory — in-memory реализация UserRepository.
type userRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.User
	nextID int64
}

// NewUserRepository возвращает in-memory репозиторий учётных записей.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{items: make(map[int64]domain.User)}
}

func (r *userRepositoryInMemory) Add(user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		r.nextID++
		user.ID = r.nextID
	} else {
		if _, exists := r.items[user.ID]; exists {
			return domain.User{}, domain.ErrDuplicateID
		}
		if user.ID > r.nextID {
			r.nextID = user.ID
		}
	}
	r.items[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *userRepositoryInMemory) Get(id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *userRepositoryInMemory) ListAll() ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, 0, len(r.items))
	for _, user := range r.items {
		result = append(result, cloneUser(user))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *userRepositoryInMemory) Update(user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[user.ID]; !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	r.items[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *userRepositoryInMemory) Delete(id int64) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.items[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	delete(r.items, id)
	return cloneUser(user), nil
}

// cloneUser копирует срезы хеша и соли, чтобы вызывающий код не мог
// мутировать сохранённые учётные данные.
func cloneUser(src domain.User) domain.User {
	dst := src
	dst.PasswordHash = append([]byte(nil), src.PasswordHash...)
	dst.Salt = append([]byte(nil), src.Salt...)
	return dst
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
