package domain

// BeerRepository описывает требования к хранилищу каталога.
type BeerRepository interface {
	// Add сохраняет новое пиво и возвращает его с присвоенным ID.
	Add(beer Beer) (Beer, error)
	// Get возвращает пиво по идентификатору или ErrBeerNotFound.
	Get(id int64) (Beer, error)
	// List применяет общий фильтр-контракт: поиск, сортировка, страницы.
	List(filter Filter) (FilterList[Beer], error)
	// Update перезаписывает существующую запись.
	Update(beer Beer) (Beer, error)
	// Delete удаляет запись и возвращает удалённое состояние.
	Delete(id int64) (Beer, error)
	// ReserveStock атомарно списывает остатки по всем позициям сразу.
	// Если хотя бы одной позиции не хватает, ни один остаток не меняется
	// и возвращается ErrInsufficientStock.
	ReserveStock(lines []OrderLine) error
	// ReleaseStock возвращает остатки на склад (компенсация).
	ReleaseStock(lines []OrderLine) error
}

// BeerTypeRepository — хранилище типов пива.
type BeerTypeRepository interface {
	Add(beerType BeerType) (BeerType, error)
	Get(id int64) (BeerType, error)
	List(filter Filter) (FilterList[BeerType], error)
	Update(beerType BeerType) (BeerType, error)
	Delete(id int64) (BeerType, error)
}

// BrandRepository — хранилище брендов.
type BrandRepository interface {
	Add(brand Brand) (Brand, error)
	Get(id int64) (Brand, error)
	List(filter Filter) (FilterList[Brand], error)
	Update(brand Brand) (Brand, error)
	Delete(id int64) (Brand, error)
}

// CustomerRepository — хранилище покупателей.
type CustomerRepository interface {
	Add(customer Customer) (Customer, error)
	Get(id int64) (Customer, error)
	Update(customer Customer) (Customer, error)
}

// UserRepository — хранилище учётных записей.
type UserRepository interface {
	Add(user User) (User, error)
	Get(id int64) (User, error)
	// ListAll возвращает все учётные записи; используется для поиска по имени.
	ListAll() ([]User, error)
	Update(user User) (User, error)
	Delete(id int64) (User, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Add сохраняет заказ вместе с позициями и возвращает его с ID.
	Add(order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(id int64) (Order, error)
	// GetForCustomer возвращает заказ, только если он принадлежит покупателю.
	GetForCustomer(orderID, customerID int64) (Order, error)
	// List возвращает страницу заказов; Filter.OrderFinished выбирает
	// финализированные либо открытые.
	List(filter Filter) (FilterList[Order], error)
	// ListByCustomer возвращает страницу заказов покупателя (только постраничность).
	ListByCustomer(customerID int64, filter Filter) (FilterList[Order], error)
	// Update перезаписывает заказ. Позиции и цена при этом не трогаются
	// вызывающими: меняется только статус.
	Update(order Order) (Order, error)
	// Delete удаляет заказ вместе с позициями.
	Delete(id int64) (Order, error)
}
