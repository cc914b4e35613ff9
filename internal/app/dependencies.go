package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/auth"
	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/notify"
	"github.com/vladislavdragonenkov/beershop/internal/service/account"
	"github.com/vladislavdragonenkov/beershop/internal/service/catalog"
	"github.com/vladislavdragonenkov/beershop/internal/service/customer"
	"github.com/vladislavdragonenkov/beershop/internal/service/order"
	"github.com/vladislavdragonenkov/beershop/internal/storage/memory"
	"github.com/vladislavdragonenkov/beershop/internal/storage/postgres"
	"github.com/vladislavdragonenkov/beershop/internal/validation"
)

// Dependencies содержит хранилища приложения и общий logger.
type Dependencies struct {
	Beers       domain.BeerRepository
	BeerTypes   domain.BeerTypeRepository
	Brands      domain.BrandRepository
	Customers   domain.CustomerRepository
	Users       domain.UserRepository
	Orders      domain.OrderRepository
	Outbox      domain.OutboxRepository
	Timeline    domain.TimelineRepository
	Submissions domain.SubmissionRepository

	// Store заполнен только при PostgreSQL-хранилище; nil для in-memory.
	Store  *postgres.Store
	Logger *log.Entry
}

// NewDependencies создаёт in-memory зависимости для локальной разработки
// и тестов.
func NewDependencies(logger *log.Entry) *Dependencies {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	return &Dependencies{
		Beers:       memory.NewBeerRepository(),
		BeerTypes:   memory.NewBeerTypeRepository(),
		Brands:      memory.NewBrandRepository(),
		Customers:   memory.NewCustomerRepository(),
		Users:       memory.NewUserRepository(),
		Orders:      memory.NewOrderRepository(),
		Outbox:      memory.NewOutboxRepository(),
		Timeline:    memory.NewTimelineRepository(),
		Submissions: memory.NewSubmissionRepository(),
		Logger:      logger,
	}
}

// NewPostgresDependencies открывает PostgreSQL, применяет миграции и
// собирает репозитории поверх общего подключения.
func NewPostgresDependencies(ctx context.Context, dsn string, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Dependencies{
		Beers:       postgres.NewBeerRepository(store),
		BeerTypes:   postgres.NewBeerTypeRepository(store),
		Brands:      postgres.NewBrandRepository(store),
		Customers:   postgres.NewCustomerRepository(store),
		Users:       postgres.NewUserRepository(store),
		Orders:      postgres.NewOrderRepository(store),
		Outbox:      postgres.NewOutboxRepository(store),
		Timeline:    postgres.NewTimelineRepository(store),
		Submissions: postgres.NewSubmissionRepository(store),
		Store:       store,
		Logger:      logger,
	}, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d == nil || d.Store == nil {
		return nil
	}
	return d.Store.Close()
}

// Services собирает прикладные сервисы магазина поверх зависимостей.
type Services struct {
	Beers     *catalog.BeerService
	BeerTypes *catalog.TypeService
	Brands    *catalog.BrandService
	Customers *customer.Service
	Accounts  *account.Service
	Orders    *order.Service
}

// BuildServices связывает хранилища, валидацию, уведомления и
// криптографию учётных записей в готовый набор сервисов.
func BuildServices(deps *Dependencies, signingKey []byte) *Services {
	logger := deps.Logger
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	validator := validation.New()
	notifier := notify.NewOutboxNotifier(deps.Outbox, logger.WithField("component", "notifier"))
	authHelper := auth.NewHelper(signingKey)

	orders := order.NewService(
		deps.Orders,
		deps.Beers,
		deps.Customers,
		deps.Timeline,
		notifier,
		logger.WithField("component", "order"),
	).WithSubmissions(deps.Submissions)

	return &Services{
		Beers:     catalog.NewBeerService(deps.Beers, deps.BeerTypes, deps.Brands, validator, logger.WithField("component", "catalog-beer")),
		BeerTypes: catalog.NewTypeService(deps.BeerTypes, validator, logger.WithField("component", "catalog-type")),
		Brands:    catalog.NewBrandService(deps.Brands, validator, logger.WithField("component", "catalog-brand")),
		Customers: customer.NewService(deps.Customers, validator, logger.WithField("component", "customer")),
		Accounts:  account.NewService(deps.Users, authHelper, validator, logger.WithField("component", "account")),
		Orders:    orders,
	}
}
