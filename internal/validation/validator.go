// Package validation содержит чистые проверки структурных инвариантов
// сущностей. Никакого I/O: сервисный слой вызывает их до обращения к
// хранилищу, поэтому проверки обязаны быть независимы от персистентности.
package validation

import (
	"regexp"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

// Пределы дегустационных шкал и учётных полей.
const (
	maxEBC         = 80
	maxIBU         = 120
	maxPercentage  = 100
	maxPostalCode  = 9999
	minUsernameLen = 8
	maxUsernameLen = 24
	minPasswordLen = 8
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)

// Validator проверяет сущности на структурные инварианты. Все методы
// возвращают первое нарушенное правило как ошибку категории validation;
// повторный вызов на неизменённой сущности даёт тот же результат.
type Validator struct{}

// New возвращает готовый к работе Validator.
func New() *Validator {
	return &Validator{}
}

func violation(message string) error {
	return domain.NewError(domain.KindValidation, message)
}

// ValidateBeer проверяет позицию каталога.
func (v *Validator) ValidateBeer(beer *domain.Beer) error {
	switch {
	case beer == nil:
		return violation("Beer instance can't be null")
	case beer.ID < 0:
		return violation("Invalid ID")
	case beer.Name == "":
		return violation("Name can not be empty")
	case beer.Description == "":
		return violation("Description can not be empty")
	case beer.PriceMinor <= 0:
		return violation("Price must be higher than zero")
	case beer.EBC < 0 || beer.EBC > maxEBC:
		return violation("EBC must be betweeen 0-80")
	case beer.IBU < 0 || beer.IBU > maxIBU:
		return violation("IBU must be betweeen 0-120")
	case beer.Percentage < 0 || beer.Percentage > maxPercentage:
		return violation("Percentage must be between 0-100")
	case beer.Stock < 0:
		return violation("Stock must be a whole number above or equal to zero")
	case beer.BrandID <= 0:
		return violation("A brand must be selected")
	case beer.TypeID <= 0:
		return violation("A type must be selected")
	}
	return nil
}

// ValidateType проверяет категорию пива.
func (v *Validator) ValidateType(beerType *domain.BeerType) error {
	switch {
	case beerType == nil:
		return violation("Type instance can't be null")
	case beerType.ID < 0:
		return violation("Invalid ID")
	case beerType.TypeName == "":
		return violation("Name can not be empty")
	}
	return nil
}

// ValidateBrand проверяет бренд.
func (v *Validator) ValidateBrand(brand *domain.Brand) error {
	switch {
	case brand == nil:
		return violation("Brand instance can't be null")
	case brand.ID < 0:
		return violation("Invalid ID")
	case brand.BrandName == "":
		return violation("Name can not be empty")
	}
	return nil
}

// ValidateCustomer проверяет покупателя. Телефон необязателен.
func (v *Validator) ValidateCustomer(customer *domain.Customer) error {
	switch {
	case customer == nil:
		return violation("Customer instance can't be null")
	case customer.ID < 0:
		return violation("Invalid ID")
	case customer.FirstName == "":
		return violation("Firstname can not be empty")
	case customer.LastName == "":
		return violation("Lastname can not be empty")
	case customer.Email == "":
		return violation("Email can not be empty")
	case !emailPattern.MatchString(customer.Email):
		return violation("Email must be a valid email")
	case customer.StreetName == "":
		return violation("Streetname can not be empty")
	case customer.PostalCode < 0 || customer.PostalCode > maxPostalCode:
		return violation("Postalcode must be between 0-9999")
	case customer.CityName == "":
		return violation("Cityname can not be empty")
	}
	return nil
}

// ValidateCreateUser проверяет данные регистрации до хеширования пароля.
func (v *Validator) ValidateCreateUser(username, password, role string) error {
	switch {
	case len(username) < minUsernameLen || len(username) > maxUsernameLen:
		return violation("Username must be be between 8-24 characters")
	case len(password) < minPasswordLen:
		return violation("Password must be minimum 8 characters")
	case role == "":
		return violation("Userrole can't be null or empty")
	}
	return nil
}

// ValidateUser проверяет учётную запись с уже посчитанными хешем и солью.
func (v *Validator) ValidateUser(user *domain.User) error {
	switch {
	case user == nil:
		return violation("User instance can't be null")
	case user.ID < 0:
		return violation("Invalid ID")
	case len(user.Username) < minUsernameLen || len(user.Username) > maxUsernameLen:
		return violation("Username must be be between 8-24 characters")
	case user.Role == "":
		return violation("Userrole can't be null or empty")
	case len(user.PasswordHash) == 0:
		return violation("User password cannot be null or empty")
	case len(user.Salt) == 0:
		return violation("User salt cannot be null or empty")
	}
	return nil
}

// ValidateOrder проверяет форму заказа перед оформлением. Достаточность
// складских остатков проверяет не валидатор, а fulfillment-сервис.
func (v *Validator) ValidateOrder(order *domain.Order) error {
	switch {
	case order == nil:
		return violation("Order instance can't be null")
	case order.ID < 0:
		return violation("Invalid ID")
	case order.AccumulatedPriceMinor < 0:
		return violation("Price must be higher than zero")
	case order.CustomerID <= 0:
		return violation("Invalid customer")
	case order.CreatedAt.IsZero():
		return violation("No order attached")
	case len(order.Lines) == 0:
		return violation("Can not process order with no products")
	}
	return nil
}
