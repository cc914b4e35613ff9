package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

// customerRepositoryInMemory — in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Customer
	nextID int64
}

// NewCustomerRepository возвращает in-memory репозиторий покупателей.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{items: make(map[int64]domain.Customer)}
}

func (r *customerRepositoryInMemory) Add(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == 0 {
		r.nextID++
		customer.ID = r.nextID
	} else {
		if _, exists := r.items[customer.ID]; exists {
			return domain.Customer{}, domain.ErrDuplicateID
		}
		if customer.ID > r.nextID {
			r.nextID = customer.ID
		}
	}
	r.items[customer.ID] = customer
	return customer, nil
}

func (r *customerRepositoryInMemory) Get(id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepositoryInMemory) Update(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[customer.ID]; !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	r.items[customer.ID] = customer
	return customer, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
