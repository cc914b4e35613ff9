// Package order реализует оформление заказов против общего складского
// остатка и переход заказа из открытого в финализированный статус.
package order

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/metrics"
	"github.com/vladislavdragonenkov/beershop/internal/validation"
)

// Service оформляет, финализирует и читает заказы.
type Service struct {
	orders      domain.OrderRepository
	beers       domain.BeerRepository
	customers   domain.CustomerRepository
	timeline    domain.TimelineRepository
	submissions domain.SubmissionRepository
	notifier    domain.Notifier
	validator   *validation.Validator
	logger      *log.Entry
	metrics     *metrics.FulfillmentMetrics
}

// NewService создаёт рабочий экземпляр сервиса заказов.
func NewService(
	orders domain.OrderRepository,
	beers domain.BeerRepository,
	customers domain.CustomerRepository,
	timeline domain.TimelineRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) *Service {
	svc := newService(orders, beers, customers, timeline, notifier, logger)
	svc.metrics = metrics.NewFulfillmentMetrics()
	return svc
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	orders domain.OrderRepository,
	beers domain.BeerRepository,
	customers domain.CustomerRepository,
	timeline domain.TimelineRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) *Service {
	return newService(orders, beers, customers, timeline, notifier, logger)
}

func newService(
	orders domain.OrderRepository,
	beers domain.BeerRepository,
	customers domain.CustomerRepository,
	timeline domain.TimelineRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order")
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Service{
		orders:    orders,
		beers:     beers,
		customers: customers,
		timeline:  timeline,
		notifier:  notifier,
		validator: validation.New(),
		logger:    logger,
	}
}

// WithSubmissions подключает хранилище идемпотентных отправок
// и включает PlaceOrderIdempotent.
func (s *Service) WithSubmissions(submissions domain.SubmissionRepository) *Service {
	s.submissions = submissions
	return s
}

// PlaceOrder оформляет заказ: проверяет клиента и структуру, считает
// итоговую цену по текущим ценам позиций, атомарно резервирует остатки
// и сохраняет заказ. Ни одна проверка не меняет склад; частичного
// списания не бывает.
func (s *Service) PlaceOrder(order *domain.Order) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordOrderStarted()
	}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOrderFinished()
			s.metrics.RecordFulfillmentDuration(time.Since(start))
		}
	}()

	placed, err := s.placeOrder(order)
	if err != nil {
		if s.metrics != nil {
			if domain.IsInsufficientStock(err) {
				s.metrics.RecordInsufficientStock()
			} else {
				s.metrics.RecordOrderFailed()
			}
		}
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced()
	}
	return placed, nil
}

func (s *Service) placeOrder(order *domain.Order) (domain.Order, error) {
	if order == nil {
		return domain.Order{}, domain.ErrOrderMissing
	}

	// Отсутствующий клиент и клиент с неизвестным ID дают одно и то же
	// сообщение: внешний контракт на него опирается.
	if order.CustomerID <= 0 {
		return domain.Order{}, domain.ErrCustomerNull
	}
	if _, err := s.customers.Get(order.CustomerID); err != nil {
		s.logger.WithError(err).WithField("customer_id", order.CustomerID).Warn("order rejected: unknown customer")
		return domain.Order{}, domain.ErrCustomerNull
	}

	if err := s.validator.ValidateOrder(order); err != nil {
		return domain.Order{}, err
	}

	// Читающий проход: все позиции проверяются до того, как изменится
	// хоть один остаток. Итоговая цена фиксируется по ценам этого момента.
	checkStart := time.Now()
	var accumulated int64
	for _, line := range order.Lines {
		beer, err := s.beers.Get(line.BeerID)
		if err != nil {
			return domain.Order{}, err
		}
		if beer.Stock < line.Amount {
			s.logger.WithFields(log.Fields{
				"beer_id":   line.BeerID,
				"requested": line.Amount,
				"stock":     beer.Stock,
			}).Warn("order rejected: insufficient stock")
			return domain.Order{}, domain.ErrInsufficientStock
		}
		accumulated += int64(line.Amount) * beer.PriceMinor
	}
	if s.metrics != nil {
		s.metrics.RecordStageDuration("stock_check", time.Since(checkStart))
	}

	// Резервирование перепроверяет остатки под замком хранилища и тем
	// закрывает гонку двух одновременных оформлений одной позиции.
	reserveStart := time.Now()
	if err := s.beers.ReserveStock(order.Lines); err != nil {
		return domain.Order{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordStageDuration("reserve_stock", time.Since(reserveStart))
	}

	toPersist := *order
	toPersist.AccumulatedPriceMinor = accumulated
	toPersist.Finished = false
	toPersist.Lines = order.CloneLines()

	created, err := s.orders.Add(toPersist)
	if err != nil {
		// Компенсация: заказ не сохранился, возвращаем резерв на склад.
		if relErr := s.beers.ReleaseStock(order.Lines); relErr != nil {
			s.logger.WithError(relErr).Error("stock release after failed persist failed")
		} else if s.metrics != nil {
			s.metrics.RecordReservationUndone()
		}
		return domain.Order{}, err
	}

	s.logger.WithFields(log.Fields{
		"order_id":    created.ID,
		"customer_id": created.CustomerID,
		"price_minor": created.AccumulatedPriceMinor,
		"lines":       len(created.Lines),
	}).Info("order placed")

	// Уведомление и timeline — best-effort: заказ уже сохранён.
	s.notifier.SendOrderReceived(created)
	s.appendTimeline(created.ID, "OrderPlaced", "")

	return created, nil
}

// Finalize переводит заказ из открытого в финализированный статус.
// Меняется только флаг: цена, позиции и остатки не трогаются.
func (s *Service) Finalize(orderID int64) (domain.Order, error) {
	if orderID <= 0 {
		return domain.Order{}, domain.ErrIncorrectID
	}

	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Finished {
		s.logger.WithField("order_id", orderID).Debug("order already finalized")
		return order, nil
	}

	order.Finished = true
	updated, err := s.orders.Update(order)
	if err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderFinalized()
	}
	s.logger.WithField("order_id", orderID).Info("order finalized")

	s.notifier.SendOrderConfirmed(updated)
	s.appendTimeline(orderID, "OrderFinalized", "")

	return updated, nil
}

// Delete удаляет заказ; статус заказа роли не играет.
func (s *Service) Delete(orderID int64) (domain.Order, error) {
	if orderID <= 0 {
		return domain.Order{}, domain.ErrIncorrectID
	}
	return s.orders.Delete(orderID)
}

// OrderByID возвращает заказ по идентификатору.
func (s *Service) OrderByID(orderID int64) (domain.Order, error) {
	if orderID <= 0 {
		return domain.Order{}, domain.ErrIncorrectID
	}
	return s.orders.Get(orderID)
}

// OrderByIDForCustomer возвращает заказ, только если он принадлежит покупателю.
func (s *Service) OrderByIDForCustomer(orderID, customerID int64) (domain.Order, error) {
	if orderID <= 0 || customerID <= 0 {
		return domain.Order{}, domain.ErrIncorrectID
	}
	return s.orders.GetForCustomer(orderID, customerID)
}

// Orders возвращает страницу заказов: Filter.OrderFinished выбирает
// финализированные либо открытые.
func (s *Service) Orders(filter domain.Filter) (domain.FilterList[domain.Order], error) {
	return s.orders.List(filter)
}

// OrdersByCustomer возвращает страницу заказов покупателя.
func (s *Service) OrdersByCustomer(customerID int64, filter domain.Filter) (domain.FilterList[domain.Order], error) {
	if customerID <= 0 {
		return domain.FilterList[domain.Order]{}, domain.ErrIncorrectID
	}
	return s.orders.ListByCustomer(customerID, filter)
}

// Timeline возвращает события жизненного цикла заказа.
func (s *Service) Timeline(orderID int64) ([]domain.TimelineEvent, error) {
	if orderID <= 0 {
		return nil, domain.ErrIncorrectID
	}
	if s.timeline == nil {
		return nil, nil
	}
	return s.timeline.List(orderID)
}

func (s *Service) appendTimeline(orderID int64, eventType, reason string) {
	if s.timeline == nil {
		return
	}
	event := domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Reason:   reason,
		Occurred: time.Now().UTC(),
	}
	if err := s.timeline.Append(event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"event":    eventType,
		}).Warn("append timeline event failed")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordTimelineEvent()
	}
}

// noopNotifier используется, когда уведомления не сконфигурированы.
type noopNotifier struct{}

func (noopNotifier) SendOrderReceived(domain.Order)  {}
func (noopNotifier) SendOrderConfirmed(domain.Order) {}
