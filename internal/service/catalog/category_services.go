package catalog

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/validation"
)

// TypeService — операции над категориями пива.
type TypeService struct {
	types     domain.BeerTypeRepository
	validator *validation.Validator
	logger    *log.Entry
}

// NewTypeService создаёт сервис категорий.
func NewTypeService(types domain.BeerTypeRepository, validator *validation.Validator, logger *log.Entry) *TypeService {
	if logger == nil {
		logger = log.New().WithField("component", "catalog-type")
	}
	if validator == nil {
		validator = validation.New()
	}
	return &TypeService{types: types, validator: validator, logger: logger}
}

// Create проверяет инварианты и сохраняет категорию.
func (s *TypeService) Create(beerType *domain.BeerType) (domain.BeerType, error) {
	if err := s.validator.ValidateType(beerType); err != nil {
		return domain.BeerType{}, err
	}
	created, err := s.types.Add(*beerType)
	if err != nil {
		return domain.BeerType{}, err
	}
	s.logger.WithFields(log.Fields{
		"type_id": created.ID,
		"name":    created.TypeName,
	}).Info("beer type created")
	return created, nil
}

// Get возвращает категорию по идентификатору.
func (s *TypeService) Get(id int64) (domain.BeerType, error) {
	if id <= 0 {
		return domain.BeerType{}, domain.ErrIncorrectID
	}
	return s.types.Get(id)
}

// List возвращает страницу категорий.
func (s *TypeService) List(filter domain.Filter) (domain.FilterList[domain.BeerType], error) {
	return s.types.List(filter)
}

// Update перезаписывает существующую категорию.
func (s *TypeService) Update(beerType *domain.BeerType) (domain.BeerType, error) {
	if err := s.validator.ValidateType(beerType); err != nil {
		return domain.BeerType{}, err
	}
	if beerType.ID <= 0 {
		return domain.BeerType{}, domain.ErrIncorrectID
	}
	if _, err := s.types.Get(beerType.ID); err != nil {
		return domain.BeerType{}, err
	}
	return s.types.Update(*beerType)
}

// Delete удаляет категорию.
func (s *TypeService) Delete(id int64) (domain.BeerType, error) {
	if id <= 0 {
		return domain.BeerType{}, domain.ErrIncorrectID
	}
	return s.types.Delete(id)
}

// BrandService — операции над брендами.
type BrandService struct {
	brands    domain.BrandRepository
	validator *validation.Validator
	logger    *log.Entry
}

// NewBrandService создаёт сервис брендов.
func NewBrandService(brands domain.BrandRepository, validator *validation.Validator, logger *log.Entry) *BrandService {
	if logger == nil {
		logger = log.New().WithField("component", "catalog-brand")
	}
	if validator == nil {
		validator = validation.New()
	}
	return &BrandService{brands: brands, validator: validator, logger: logger}
}

// Create проверяет инварианты и сохраняет бренд.
func (s *BrandService) Create(brand *domain.Brand) (domain.Brand, error) {
	if err := s.validator.ValidateBrand(brand); err != nil {
		return domain.Brand{}, err
	}
	created, err := s.brands.Add(*brand)
	if err != nil {
		return domain.Brand{}, err
	}
	s.logger.WithFields(log.Fields{
		"brand_id": created.ID,
		"name":     created.BrandName,
	}).Info("brand created")
	return created, nil
}

// Get возвращает бренд по идентификатору.
func (s *BrandService) Get(id int64) (domain.Brand, error) {
	if id <= 0 {
		return domain.Brand{}, domain.ErrIncorrectID
	}
	return s.brands.Get(id)
}

// List возвращает страницу брендов.
func (s *BrandService) List(filter domain.Filter) (domain.FilterList[domain.Brand], error) {
	return s.brands.List(filter)
}

// Update перезаписывает существующий бренд.
func (s *BrandService) Update(brand *domain.Brand) (domain.Brand, error) {
	if err := s.validator.ValidateBrand(brand); err != nil {
		return domain.Brand{}, err
	}
	if brand.ID <= 0 {
		return domain.Brand{}, domain.ErrIncorrectID
	}
	if _, err := s.brands.Get(brand.ID); err != nil {
		return domain.Brand{}, err
	}
	return s.brands.Update(*brand)
}

// Delete удаляет бренд.
func (s *BrandService) Delete(id int64) (domain.Brand, error) {
	if id <= 0 {
		return domain.Brand{}, domain.ErrIncorrectID
	}
	return s.brands.Delete(id)
}
