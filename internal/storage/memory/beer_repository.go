package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/listing"
)

// beerRepositoryInMemory — in-memory реализация BeerRepository для
// локальной разработки и тестов.
type beerRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Beer
	nextID int64
}

// NewBeerRepository возвращает in-memory репозиторий каталога.
func NewBeerRepository() domain.BeerRepository {
	return &beerRepositoryInMemory{items: make(map[int64]domain.Beer)}
}

// Add сохраняет новое пиво, присваивая ID при необходимости.
func (r *beerRepositoryInMemory) Add(beer domain.Beer) (domain.Beer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if beer.ID == 0 {
		r.nextID++
		beer.ID = r.nextID
	} else {
		if _, exists := r.items[beer.ID]; exists {
			return domain.Beer{}, domain.ErrDuplicateID
		}
		if beer.ID > r.nextID {
			r.nextID = beer.ID
		}
	}

	now := time.Now().UTC()
	if beer.CreatedAt.IsZero() {
		beer.CreatedAt = now
	}
	beer.UpdatedAt = now

	r.items[beer.ID] = beer
	return beer, nil
}

// Get возвращает пиво или ErrBeerNotFound.
func (r *beerRepositoryInMemory) Get(id int64) (domain.Beer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	beer, ok := r.items[id]
	if !ok {
		return domain.Beer{}, domain.ErrBeerNotFound
	}
	return beer, nil
}

// List применяет общий фильтр-контракт к каталогу.
func (r *beerRepositoryInMemory) List(filter domain.Filter) (domain.FilterList[domain.Beer], error) {
	return listing.Apply(r.snapshot(), filter, listing.Options[domain.Beer]{
		Name:   func(b domain.Beer) string { return b.Name },
		TypeID: func(b domain.Beer) int64 { return b.TypeID },
		Less: map[string]listing.Comparator[domain.Beer]{
			domain.SortKeyIBU: func(a, b domain.Beer) bool { return a.IBU < b.IBU },
			domain.SortKeyEBC: func(a, b domain.Beer) bool { return a.EBC < b.EBC },
			domain.SortKeyAlphabetical: func(a, b domain.Beer) bool {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			},
		},
		AddedDesc: func(a, b domain.Beer) bool { return a.ID > b.ID },
	})
}

// Update перезаписывает существующую запись, сохраняя дату создания.
func (r *beerRepositoryInMemory) Update(beer domain.Beer) (domain.Beer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[beer.ID]
	if !ok {
		return domain.Beer{}, domain.ErrBeerNotFound
	}
	beer.CreatedAt = current.CreatedAt
	beer.UpdatedAt = time.Now().UTC()
	r.items[beer.ID] = beer
	return beer, nil
}

// Delete удаляет запись и возвращает удалённое состояние.
func (r *beerRepositoryInMemory) Delete(id int64) (domain.Beer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	beer, ok := r.items[id]
	if !ok {
		return domain.Beer{}, domain.ErrBeerNotFound
	}
	delete(r.items, id)
	return beer, nil
}

// ReserveStock списывает остатки по всем позициям под одной блокировкой:
// сначала проверяет достаточность каждой позиции, затем списывает. Благодаря
// этому два конкурентных заказа не могут одновременно пройти проверку и
// распродать остаток в минус.
func (r *beerRepositoryInMemory) ReserveStock(lines []domain.OrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, line := range lines {
		beer, ok := r.items[line.BeerID]
		if !ok {
			return domain.ErrBeerNotFound
		}
		if beer.Stock < line.Amount {
			return domain.ErrInsufficientStock
		}
	}

	now := time.Now().UTC()
	for _, line := range lines {
		beer := r.items[line.BeerID]
		beer.Stock -= line.Amount
		beer.UpdatedAt = now
		r.items[line.BeerID] = beer
	}
	return nil
}

// ReleaseStock возвращает остатки на склад. Пропавшие за это время записи
// молча пропускаются: компенсация не должна падать из-за гонки с удалением.
func (r *beerRepositoryInMemory) ReleaseStock(lines []domain.OrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, line := range lines {
		beer, ok := r.items[line.BeerID]
		if !ok {
			continue
		}
		beer.Stock += line.Amount
		beer.UpdatedAt = now
		r.items[line.BeerID] = beer
	}
	return nil
}

// snapshot возвращает копию каталога в порядке добавления.
func (r *beerRepositoryInMemory) snapshot() []domain.Beer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Beer, 0, len(r.items))
	for _, beer := range r.items {
		result = append(result, beer)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

var _ domain.BeerRepository = (*beerRepositoryInMemory)(nil)
