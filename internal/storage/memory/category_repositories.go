package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/listing"
)

// beerTypeRepositoryInMemory — in-memory реализация BeerTypeRepository.
type beerTypeRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.BeerType
	nextID int64
}

// NewBeerTypeRepository возвращает in-memory репозиторий типов пива.
func NewBeerTypeRepository() domain.BeerTypeRepository {
	return &beerTypeRepositoryInMemory{items: make(map[int64]domain.BeerType)}
}

func (r *beerTypeRepositoryInMemory) Add(beerType domain.BeerType) (domain.BeerType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if beerType.ID == 0 {
		r.nextID++
		beerType.ID = r.nextID
	} else {
		if _, exists := r.items[beerType.ID]; exists {
			return domain.BeerType{}, domain.ErrDuplicateID
		}
		if beerType.ID > r.nextID {
			r.nextID = beerType.ID
		}
	}
	r.items[beerType.ID] = beerType
	return beerType, nil
}

func (r *beerTypeRepositoryInMemory) Get(id int64) (domain.BeerType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	beerType, ok := r.items[id]
	if !ok {
		return domain.BeerType{}, domain.ErrTypeNotFound
	}
	return beerType, nil
}

func (r *beerTypeRepositoryInMemory) List(filter domain.Filter) (domain.FilterList[domain.BeerType], error) {
	r.mu.RLock()
	items := make([]domain.BeerType, 0, len(r.items))
	for _, beerType := range r.items {
		items = append(items, beerType)
	}
	r.mu.RUnlock()
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return listing.Apply(items, filter, listing.Options[domain.BeerType]{
		Name: func(t domain.BeerType) string { return t.TypeName },
		Less: map[string]listing.Comparator[domain.BeerType]{
			domain.SortKeyAlphabetical: func(a, b domain.BeerType) bool {
				return strings.ToLower(a.TypeName) < strings.ToLower(b.TypeName)
			},
		},
		AddedDesc: func(a, b domain.BeerType) bool { return a.ID > b.ID },
	})
}

func (r *beerTypeRepositoryInMemory) Update(beerType domain.BeerType) (domain.BeerType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[beerType.ID]; !ok {
		return domain.BeerType{}, domain.ErrTypeNotFound
	}
	r.items[beerType.ID] = beerType
	return beerType, nil
}

func (r *beerTypeRepositoryInMemory) Delete(id int64) (domain.BeerType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	beerType, ok := r.items[id]
	if !ok {
		return domain.BeerType{}, domain.ErrTypeNotFound
	}
	delete(r.items, id)
	return beerType, nil
}

// brandRepositoryInMemory — in-memory реализация BrandRepository.
type brandRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Brand
	nextID int64
}

// NewBrandRepository возвращает in-memory репозиторий брендов.
func NewBrandRepository() domain.BrandRepository {
	return &brandRepositoryInMemory{items: make(map[int64]domain.Brand)}
}

func (r *brandRepositoryInMemory) Add(brand domain.Brand) (domain.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if brand.ID == 0 {
		r.nextID++
		brand.ID = r.nextID
	} else {
		if _, exists := r.items[brand.ID]; exists {
			return domain.Brand{}, domain.ErrDuplicateID
		}
		if brand.ID > r.nextID {
			r.nextID = brand.ID
		}
	}
	r.items[brand.ID] = brand
	return brand, nil
}

func (r *brandRepositoryInMemory) Get(id int64) (domain.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	brand, ok := r.items[id]
	if !ok {
		return domain.Brand{}, domain.ErrBrandNotFound
	}
	return brand, nil
}

func (r *brandRepositoryInMemory) List(filter domain.Filter) (domain.FilterList[domain.Brand], error) {
	r.mu.RLock()
	items := make([]domain.Brand, 0, len(r.items))
	for _, brand := range r.items {
		items = append(items, brand)
	}
	r.mu.RUnlock()
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return listing.Apply(items, filter, listing.Options[domain.Brand]{
		Name: func(b domain.Brand) string { return b.BrandName },
		Less: map[string]listing.Comparator[domain.Brand]{
			domain.SortKeyAlphabetical: func(a, b domain.Brand) bool {
				return strings.ToLower(a.BrandName) < strings.ToLower(b.BrandName)
			},
		},
		AddedDesc: func(a, b domain.Brand) bool { return a.ID > b.ID },
	})
}

func (r *brandRepositoryInMemory) Update(brand domain.Brand) (domain.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[brand.ID]; !ok {
		return domain.Brand{}, domain.ErrBrandNotFound
	}
	r.items[brand.ID] = brand
	return brand, nil
}

func (r *brandRepositoryInMemory) Delete(id int64) (domain.Brand, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	brand, ok := r.items[id]
	if !ok {
		return domain.Brand{}, domain.ErrBrandNotFound
	}
	delete(r.items, id)
	return brand, nil
}

var _ domain.BeerTypeRepository = (*beerTypeRepositoryInMemory)(nil)
var _ domain.BrandRepository = (*brandRepositoryInMemory)(nil)
