package domain

import "errors"

// ErrorKind классифицирует доменные ошибки, чтобы верхние слои могли
// сопоставлять их по категории, а не по тексту сообщения.
type ErrorKind string

const (
	// KindInvalidArgument — некорректный ввод вызывающей стороны.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindValidation — сущность нарушает структурные инварианты.
	KindValidation ErrorKind = "validation"
	// KindInsufficientStock — бизнес-ошибка нехватки товара на складе.
	KindInsufficientStock ErrorKind = "insufficient_stock"
	// KindNotFound — сущность с таким идентификатором отсутствует.
	KindNotFound ErrorKind = "not_found"
	// KindConflict — конфликт состояния (дубликат ключа, гонка версий).
	KindConflict ErrorKind = "conflict"
	// KindInvalidPaging — отрицательные параметры страницы.
	KindInvalidPaging ErrorKind = "invalid_paging"
	// KindOutOfBounds — запрошенная страница за пределами выборки.
	KindOutOfBounds ErrorKind = "out_of_bounds"
	// KindUnauthorized — ошибка аутентификации.
	KindUnauthorized ErrorKind = "unauthorized"
)

// Error — доменная ошибка с категорией и человекочитаемым сообщением.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError создаёт доменную ошибку заданной категории.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf возвращает категорию ошибки или пустую строку для посторонних ошибок.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind проверяет, относится ли ошибка к указанной категории.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsInvalidArgument проверяет ошибку на категорию invalid_argument.
func IsInvalidArgument(err error) bool { return IsKind(err, KindInvalidArgument) }

// IsValidation проверяет ошибку на категорию validation.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsInsufficientStock проверяет ошибку на нехватку товара.
func IsInsufficientStock(err error) bool { return IsKind(err, KindInsufficientStock) }

// IsNotFound проверяет ошибку на отсутствие сущности.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsConflict проверяет ошибку на конфликт состояния.
func IsConflict(err error) bool { return IsKind(err, KindConflict) }

// IsInvalidPaging проверяет ошибку на некорректные параметры страницы.
func IsInvalidPaging(err error) bool { return IsKind(err, KindInvalidPaging) }

// IsOutOfBounds проверяет ошибку на выход страницы за пределы выборки.
func IsOutOfBounds(err error) bool { return IsKind(err, KindOutOfBounds) }

// IsUnauthorized проверяет ошибку аутентификации.
func IsUnauthorized(err error) bool { return IsKind(err, KindUnauthorized) }

var (
	// ErrOrderMissing — вызывающая сторона не приложила заказ.
	ErrOrderMissing = NewError(KindInvalidArgument, "attached order does not exist")
	// ErrCustomerNull — заказ без клиента либо клиент с таким ID не найден.
	// Сообщение намеренно одно на оба случая, внешний контракт на него опирается.
	ErrCustomerNull = NewError(KindInvalidArgument, "customer cannot be null")
	// ErrIncorrectID — неположительный идентификатор во входных данных.
	ErrIncorrectID = NewError(KindInvalidArgument, "incorrect ID entered")
	// ErrInsufficientStock — запрошено больше, чем осталось на складе.
	ErrInsufficientStock = NewError(KindInsufficientStock, "order amount higher than inventory stock")
	// ErrInvalidPaging — отрицательная страница или размер страницы.
	ErrInvalidPaging = NewError(KindInvalidPaging, "page or items per page must be above zero")
	// ErrIndexOutOfBounds — страница старше первой оказалась пустой.
	ErrIndexOutOfBounds = NewError(KindOutOfBounds, "index out of bounds")

	// ErrBeerNotFound возвращается, если пиво не найдено в репозитории.
	ErrBeerNotFound = NewError(KindNotFound, "no beer with such ID found")
	// ErrTypeNotFound возвращается, если тип пива не найден.
	ErrTypeNotFound = NewError(KindNotFound, "no type with such ID found")
	// ErrBrandNotFound возвращается, если бренд не найден.
	ErrBrandNotFound = NewError(KindNotFound, "no brand with such ID found")
	// ErrCustomerNotFound возвращается, если клиент не найден.
	ErrCustomerNotFound = NewError(KindNotFound, "no customer with such ID found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = NewError(KindNotFound, "no order with such ID found")
	// ErrUserNotFound возвращается, если учётная запись не найдена.
	ErrUserNotFound = NewError(KindNotFound, "no user with such ID found")

	// ErrDuplicateID — запись с таким идентификатором уже существует.
	ErrDuplicateID = NewError(KindConflict, "entity with such ID already exists")
	// ErrDuplicateUsername — имя пользователя уже занято.
	ErrDuplicateUsername = NewError(KindConflict, "user with same name already exists")

	// ErrMissingCredentials — логин без имени или пароля.
	ErrMissingCredentials = NewError(KindUnauthorized, "username or password is non-existing")
	// ErrUnknownUser — пользователь с таким именем не зарегистрирован.
	ErrUnknownUser = NewError(KindUnauthorized, "no user registered with such a name")
	// ErrInvalidPassword — пароль не совпал с сохранённым хешем.
	ErrInvalidPassword = NewError(KindUnauthorized, "entered password is incorrect")
)

var (
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// ErrSubmissionKeyRequired — пустой ключ идемпотентной отправки заказа.
	ErrSubmissionKeyRequired = errors.New("submission key is required")
	// ErrSubmissionHashRequired — пустой хеш запроса.
	ErrSubmissionHashRequired = errors.New("submission request hash is required")
	// ErrSubmissionHashMismatch — тот же ключ пришёл с другим содержимым запроса.
	ErrSubmissionHashMismatch = errors.New("submission request hash mismatch")
	// ErrSubmissionExists — ключ уже зарегистрирован и обрабатывается/обработан.
	ErrSubmissionExists = errors.New("submission key already exists")
	// ErrSubmissionNotFound — запись по ключу отсутствует.
	ErrSubmissionNotFound = errors.New("submission key not found")
)
