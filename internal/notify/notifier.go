// Package notify содержит реализации domain.Notifier. Рабочая реализация
// не доставляет письма сама: она кладёт событие-инвойс в transactional
// outbox, откуда его публикует фоновый worker.
package notify

import (
	"encoding/json"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

// Типы событий уведомлений.
const (
	EventOrderReceived  = "order.received"
	EventOrderConfirmed = "order.confirmed"
)

// invoiceLine — строка инвойса в полезной нагрузке события.
type invoiceLine struct {
	BeerID int64 `json:"beer_id"`
	Amount int   `json:"amount"`
}

// invoicePayload — данные, которые раньше рендерились в письмо-инвойс.
type invoicePayload struct {
	OrderID               int64         `json:"order_id"`
	CustomerID            int64         `json:"customer_id"`
	AccumulatedPriceMinor int64         `json:"accumulated_price_minor"`
	Lines                 []invoiceLine `json:"lines"`
	Finished              bool          `json:"finished"`
	TS                    string        `json:"ts"`
}

// OutboxNotifier — рабочая реализация Notifier поверх outbox.
type OutboxNotifier struct {
	outbox domain.OutboxRepository
	logger *log.Entry
}

// NewOutboxNotifier создаёт Notifier, публикующий события через outbox.
func NewOutboxNotifier(outbox domain.OutboxRepository, logger *log.Entry) *OutboxNotifier {
	if logger == nil {
		logger = log.New().WithField("component", "notify")
	}
	return &OutboxNotifier{outbox: outbox, logger: logger}
}

// SendOrderReceived ставит в очередь событие о принятом заказе.
func (n *OutboxNotifier) SendOrderReceived(order domain.Order) {
	n.enqueue(EventOrderReceived, order)
}

// SendOrderConfirmed ставит в очередь событие о финализированном заказе.
func (n *OutboxNotifier) SendOrderConfirmed(order domain.Order) {
	n.enqueue(EventOrderConfirmed, order)
}

func (n *OutboxNotifier) enqueue(eventType string, order domain.Order) {
	lines := make([]invoiceLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, invoiceLine{BeerID: l.BeerID, Amount: l.Amount})
	}

	payload := invoicePayload{
		OrderID:               order.ID,
		CustomerID:            order.CustomerID,
		AccumulatedPriceMinor: order.AccumulatedPriceMinor,
		Lines:                 lines,
		Finished:              order.Finished,
		TS:                    time.Now().UTC().Format(time.RFC3339Nano),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"event":    eventType,
		}).Error("marshal notification failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   formatID(order.ID),
		EventType:     eventType,
		Payload:       data,
	}
	if _, err := n.outbox.Enqueue(msg); err != nil {
		// Уведомления best-effort: ошибка не должна дойти до оформления заказа.
		n.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"event":    eventType,
		}).Error("enqueue notification failed")
		return
	}

	n.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"event":    eventType,
	}).Debug("notification enqueued")
}

// NoopNotifier молча игнорирует уведомления (для тестов и dev-режима).
type NoopNotifier struct{}

// NewNoopNotifier создаёт Notifier-заглушку.
func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) SendOrderReceived(domain.Order)  {}
func (NoopNotifier) SendOrderConfirmed(domain.Order) {}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

var (
	_ domain.Notifier = (*OutboxNotifier)(nil)
	_ domain.Notifier = (*NoopNotifier)(nil)
)
