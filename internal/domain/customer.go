package domain

// Customer — покупатель магазина с контактными и адресными данными.
type Customer struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	StreetName  string
	// PostalCode — датский четырёхзначный почтовый индекс.
	PostalCode int
	CityName   string
	// UserID связывает покупателя с учётной записью один-к-одному.
	UserID int64
}
