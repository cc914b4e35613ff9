package customer

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/validation"
)

// Service — операции над покупателями.
type Service struct {
	customers domain.CustomerRepository
	validator *validation.Validator
	logger    *log.Entry
}

// NewService создаёт сервис покупателей.
func NewService(customers domain.CustomerRepository, validator *validation.Validator, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customer")
	}
	if validator == nil {
		validator = validation.New()
	}
	return &Service{customers: customers, validator: validator, logger: logger}
}

// Create проверяет инварианты и сохраняет покупателя.
func (s *Service) Create(customer *domain.Customer) (domain.Customer, error) {
	if err := s.validator.ValidateCustomer(customer); err != nil {
		return domain.Customer{}, err
	}
	created, err := s.customers.Add(*customer)
	if err != nil {
		return domain.Customer{}, err
	}
	s.logger.WithField("customer_id", created.ID).Info("customer created")
	return created, nil
}

// Get возвращает покупателя по идентификатору.
func (s *Service) Get(id int64) (domain.Customer, error) {
	if id <= 0 {
		return domain.Customer{}, domain.ErrIncorrectID
	}
	return s.customers.Get(id)
}

// Update перезаписывает данные покупателя.
func (s *Service) Update(customer *domain.Customer) (domain.Customer, error) {
	if err := s.validator.ValidateCustomer(customer); err != nil {
		return domain.Customer{}, err
	}
	if customer.ID <= 0 {
		return domain.Customer{}, domain.ErrIncorrectID
	}
	if _, err := s.customers.Get(customer.ID); err != nil {
		return domain.Customer{}, err
	}
	return s.customers.Update(*customer)
}
