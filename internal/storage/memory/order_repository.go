package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/listing"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Order
	nextID int64
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{items: make(map[int64]domain.Order)}
}

// Add сохраняет заказ вместе с позициями.
func (r *orderRepositoryInMemory) Add(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		r.nextID++
		order.ID = r.nextID
	} else {
		if _, exists := r.items[order.ID]; exists {
			return domain.Order{}, domain.ErrDuplicateID
		}
		if order.ID > r.nextID {
			r.nextID = order.ID
		}
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	order.UpdatedAt = order.CreatedAt

	// Сохраняем копию позиций, чтобы избежать непредсказуемых мутаций извне.
	order.Lines = order.CloneLines()
	r.items[order.ID] = order
	return cloneOrder(order), nil
}

// Get возвращает заказ или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// GetForCustomer возвращает заказ, только если он принадлежит покупателю.
func (r *orderRepositoryInMemory) GetForCustomer(orderID, customerID int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[orderID]
	if !ok || order.CustomerID != customerID {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// List возвращает страницу заказов: OrderFinished выбирает финализированные
// либо открытые.
func (r *orderRepositoryInMemory) List(filter domain.Filter) (domain.FilterList[domain.Order], error) {
	return listing.Apply(r.snapshot(), filter, listing.Options[domain.Order]{
		Match:     func(o domain.Order) bool { return o.Finished == filter.OrderFinished },
		AddedDesc: func(a, b domain.Order) bool { return a.ID > b.ID },
	})
}

// ListByCustomer возвращает страницу заказов покупателя; применяется только
// постраничный срез, без поиска и сортировки.
func (r *orderRepositoryInMemory) ListByCustomer(customerID int64, filter domain.Filter) (domain.FilterList[domain.Order], error) {
	return listing.Apply(r.snapshot(), filter, listing.Options[domain.Order]{
		Match: func(o domain.Order) bool { return o.CustomerID == customerID },
	})
}

// Update перезаписывает заказ, не трогая дату создания.
func (r *orderRepositoryInMemory) Update(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[order.ID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	order.CreatedAt = current.CreatedAt
	order.UpdatedAt = time.Now().UTC()
	order.Lines = order.CloneLines()
	r.items[order.ID] = order
	return cloneOrder(order), nil
}

// Delete удаляет заказ вместе с позициями.
func (r *orderRepositoryInMemory) Delete(id int64) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return cloneOrder(order), nil
}

func (r *orderRepositoryInMemory) snapshot() []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, cloneOrder(order))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func cloneOrder(src domain.Order) domain.Order {
	dst := src
	dst.Lines = src.CloneLines()
	return dst
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
