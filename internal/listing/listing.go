// Package listing реализует общий контракт списочных операций: поиск по
// подстроке имени, фильтр по типу, сортировку и постраничный срез. Один и
// тот же алгоритм применяется ко всем перечислимым сущностям, поэтому
// граничные случаи (пустая первая страница против страницы за пределами
// выборки) ведут себя одинаково во всём магазине.
package listing

import (
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

// Comparator сравнивает два элемента; true означает «a раньше b».
type Comparator[T any] func(a, b T) bool

// Options описывает, как движок достаёт из элемента поля для фильтрации
// и какие ключи сортировки сущность поддерживает. Любое nil-поле просто
// отключает соответствующую возможность.
type Options[T any] struct {
	// Match — предварительный предикат выборки (например, статус заказа).
	Match func(T) bool
	// Name возвращает имя элемента для поиска по подстроке.
	Name func(T) string
	// TypeID возвращает ссылку на тип для фильтра равенства.
	TypeID func(T) int64
	// Less — восходящие компараторы по ключам сортировки.
	Less map[string]Comparator[T]
	// AddedDesc — компаратор «свежести»: обратный порядок добавления.
	// Применяется только на нисходящей ветке, как в каталоге.
	AddedDesc Comparator[T]
}

// Apply прогоняет элементы через фильтр и возвращает страницу вместе с
// размером всей отфильтрованной выборки.
//
// Контракт страниц: CurrentPage и ItemsPerPage, равные нулю, означают
// «отдать всё без постраничности»; отрицательные значения — ошибка
// invalid_paging. Пустая первая страница — легальный пустой результат,
// пустая страница со второй и дальше — ошибка out_of_bounds.
func Apply[T any](items []T, filter domain.Filter, opts Options[T]) (domain.FilterList[T], error) {
	if filter.CurrentPage < 0 || filter.ItemsPerPage < 0 {
		return domain.FilterList[T]{}, domain.ErrInvalidPaging
	}

	filtered := make([]T, 0, len(items))
	term := strings.ToLower(filter.Name)
	for _, item := range items {
		if opts.Match != nil && !opts.Match(item) {
			continue
		}
		if term != "" {
			if opts.Name == nil || !strings.Contains(strings.ToLower(opts.Name(item)), term) {
				continue
			}
		}
		if filter.BeerTypeID != 0 {
			if opts.TypeID == nil || opts.TypeID(item) != filter.BeerTypeID {
				continue
			}
		}
		filtered = append(filtered, item)
	}

	sortItems(filtered, filter, opts)

	total := len(filtered)

	page := filtered
	if filter.CurrentPage > 0 {
		lo := (filter.CurrentPage - 1) * filter.ItemsPerPage
		hi := lo + filter.ItemsPerPage
		if lo > len(filtered) {
			lo = len(filtered)
		}
		if hi > len(filtered) {
			hi = len(filtered)
		}
		page = filtered[lo:hi]
		if len(page) == 0 && filter.CurrentPage > 1 {
			return domain.FilterList[T]{}, domain.ErrIndexOutOfBounds
		}
	}

	return domain.FilterList[T]{TotalItems: total, Items: page}, nil
}

// sortItems применяет сортировку на месте. Неизвестный ключ — no-op,
// пустое направление трактуется как восходящее.
func sortItems[T any](items []T, filter domain.Filter, opts Options[T]) {
	if filter.SortKey == "" {
		return
	}

	switch strings.ToLower(filter.SortDir) {
	case "", domain.SortAsc:
		if less, ok := opts.Less[filter.SortKey]; ok {
			sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
		}
	case domain.SortDesc:
		if filter.SortKey == domain.SortKeyAdded {
			if opts.AddedDesc != nil {
				sort.SliceStable(items, func(i, j int) bool { return opts.AddedDesc(items[i], items[j]) })
			}
			return
		}
		if less, ok := opts.Less[filter.SortKey]; ok {
			sort.SliceStable(items, func(i, j int) bool { return less(items[j], items[i]) })
		}
	}
}
