package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// События жизненного цикла заказа
	EventTypeOrderReceived  EventType = "order.received"
	EventTypeOrderConfirmed EventType = "order.confirmed"
	EventTypeOrderDeleted   EventType = "order.deleted"

	// События каталога
	EventTypeStockReserved EventType = "stock.reserved"
	EventTypeStockReleased EventType = "stock.released"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "beershop.order.events"
	TopicDeadLetterQueue = "beershop.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers для retry логики
const (
	HeaderRetryCount    = "x-retry-count"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType  EventType              `json:"event_type"`
	OrderID    int64                  `json:"order_id"`
	CustomerID int64                  `json:"customer_id"`
	PriceMinor int64                  `json:"price_minor"`
	Finished   bool                   `json:"finished"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, customerID, priceMinor int64, finished bool, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		PriceMinor: priceMinor,
		Finished:   finished,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}
}
