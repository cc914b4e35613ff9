package domain

// Ключи сортировки, которые понимает каталог. Неизвестный ключ — no-op.
const (
	SortKeyIBU = "IBU"
	SortKeyEBC = "EBC"
	// SortKeyAlphabetical сортирует по имени.
	SortKeyAlphabetical = "ALF"
	// SortKeyAdded — «свежесть»: обратный порядок добавления. Работает
	// только в паре с нисходящим направлением, как в каталоге магазина.
	SortKeyAdded = "ADDED"
)

// Направления сортировки. Пустое направление означает восходящее.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filter — общий запрос всех списочных операций: поиск, сортировка, страницы.
type Filter struct {
	// CurrentPage нумеруется с единицы; 0 означает «без постраничности».
	CurrentPage int
	// ItemsPerPage — размер страницы; 0 означает «без постраничности».
	ItemsPerPage int
	// Name — подстрока имени без учёта регистра. Пустая строка — без фильтра.
	Name string
	// BeerTypeID фильтрует по типу; 0 — без фильтра.
	BeerTypeID int64
	// SortKey и SortDir управляют сортировкой; см. константы выше.
	SortKey string
	SortDir string
	// OrderFinished применяется только к спискам заказов:
	// true выбирает финализированные, false — открытые.
	OrderFinished bool
}

// FilterList — страница результатов вместе с размером всей выборки до
// постраничного среза.
type FilterList[T any] struct {
	TotalItems int
	Items      []T
}
