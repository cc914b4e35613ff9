package catalog

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/validation"
)

// BeerService — операции каталога над пивом: CRUD и постраничный список.
type BeerService struct {
	beers     domain.BeerRepository
	types     domain.BeerTypeRepository
	brands    domain.BrandRepository
	validator *validation.Validator
	logger    *log.Entry
}

// NewBeerService создаёт сервис каталога пива.
func NewBeerService(
	beers domain.BeerRepository,
	types domain.BeerTypeRepository,
	brands domain.BrandRepository,
	validator *validation.Validator,
	logger *log.Entry,
) *BeerService {
	if logger == nil {
		logger = log.New().WithField("component", "catalog-beer")
	}
	if validator == nil {
		validator = validation.New()
	}
	return &BeerService{
		beers:     beers,
		types:     types,
		brands:    brands,
		validator: validator,
		logger:    logger,
	}
}

// Create проверяет инварианты и существование категории/бренда,
// затем сохраняет пиво.
func (s *BeerService) Create(beer *domain.Beer) (domain.Beer, error) {
	if err := s.validator.ValidateBeer(beer); err != nil {
		return domain.Beer{}, err
	}
	if _, err := s.types.Get(beer.TypeID); err != nil {
		s.logger.WithError(err).WithField("type_id", beer.TypeID).Warn("beer create rejected: unknown type")
		return domain.Beer{}, err
	}
	if _, err := s.brands.Get(beer.BrandID); err != nil {
		s.logger.WithError(err).WithField("brand_id", beer.BrandID).Warn("beer create rejected: unknown brand")
		return domain.Beer{}, err
	}

	created, err := s.beers.Add(*beer)
	if err != nil {
		return domain.Beer{}, err
	}
	s.logger.WithFields(log.Fields{
		"beer_id": created.ID,
		"name":    created.Name,
	}).Info("beer created")
	return created, nil
}

// Get возвращает пиво по идентификатору.
func (s *BeerService) Get(id int64) (domain.Beer, error) {
	if id <= 0 {
		return domain.Beer{}, domain.ErrIncorrectID
	}
	return s.beers.Get(id)
}

// List возвращает отфильтрованную страницу каталога.
func (s *BeerService) List(filter domain.Filter) (domain.FilterList[domain.Beer], error) {
	return s.beers.List(filter)
}

// Update перезаписывает существующую запись; чтение перед записью
// гарантирует not-found до валидных побочных эффектов.
func (s *BeerService) Update(beer *domain.Beer) (domain.Beer, error) {
	if err := s.validator.ValidateBeer(beer); err != nil {
		return domain.Beer{}, err
	}
	if beer.ID <= 0 {
		return domain.Beer{}, domain.ErrIncorrectID
	}
	if _, err := s.beers.Get(beer.ID); err != nil {
		return domain.Beer{}, err
	}
	if _, err := s.types.Get(beer.TypeID); err != nil {
		return domain.Beer{}, err
	}
	if _, err := s.brands.Get(beer.BrandID); err != nil {
		return domain.Beer{}, err
	}
	return s.beers.Update(*beer)
}

// Delete удаляет пиво и возвращает удалённое состояние.
func (s *BeerService) Delete(id int64) (domain.Beer, error) {
	if id <= 0 {
		return domain.Beer{}, domain.ErrIncorrectID
	}
	deleted, err := s.beers.Delete(id)
	if err != nil {
		return domain.Beer{}, err
	}
	s.logger.WithField("beer_id", id).Info("beer deleted")
	return deleted, nil
}
