package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FulfillmentMetrics содержит метрики конвейера оформления заказов.
type FulfillmentMetrics struct {
	// Счётчики операций
	ordersPlaced       prometheus.Counter
	ordersFinalized    prometheus.Counter
	ordersFailed       prometheus.Counter
	insufficientStock  prometheus.Counter
	reservationsUndone prometheus.Counter

	// Гистограммы времени выполнения
	fulfillmentDuration prometheus.Histogram
	stageDuration       *prometheus.HistogramVec

	// Счётчики событий timeline и outbox
	timelineEvents prometheus.Counter
	outboxEvents   prometheus.Counter

	// Gauge для заказов, находящихся в обработке
	activeOrders prometheus.Gauge
}

// NewFulfillmentMetrics создаёт новый экземпляр метрик оформления заказов.
func NewFulfillmentMetrics() *FulfillmentMetrics {
	return newFulfillmentMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newFulfillmentMetricsWithRegisterer(registerer prometheus.Registerer) *FulfillmentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &FulfillmentMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "beershop_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersFinalized: registerCounter(registerer, prometheus.CounterOpts{
			Name: "beershop_orders_finalized_total",
			Help: "Total number of orders finalized",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "beershop_orders_failed_total",
			Help: "Total number of order placements failed",
		}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "beershop_orders_insufficient_stock_total",
			Help: "Total number of order placements rejected due to insufficient stock",
		}),
		reservationsUndone: registerCounter(registerer, prometheus.CounterOpts{
			Name: "beershop_stock_reservations_undone_total",
			Help: "Total number of stock reservations rolled back after a failed placement",
		}),
		fulfillmentDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "beershop_order_fulfillment_duration_seconds",
			Help:    "Duration of order placement in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stageDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "beershop_order_stage_duration_seconds",
			Help:    "Duration of individual order placement stages in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"stage"}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "beershop_timeline_events_total",
			Help: "Total number of timeline events recorded",
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "beershop_outbox_events_total",
			Help: "Total number of outbox events published",
		}),
		activeOrders: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "beershop_active_order_placements",
			Help: "Number of order placements currently in flight",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderStarted увеличивает количество заказов в обработке.
func (m *FulfillmentMetrics) RecordOrderStarted() {
	m.activeOrders.Inc()
}

// RecordOrderFinished уменьшает количество заказов в обработке.
func (m *FulfillmentMetrics) RecordOrderFinished() {
	m.activeOrders.Dec()
}

// RecordOrderPlaced увеличивает счётчик успешно оформленных заказов.
func (m *FulfillmentMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordOrderFinalized увеличивает счётчик финализированных заказов.
func (m *FulfillmentMetrics) RecordOrderFinalized() {
	m.ordersFinalized.Inc()
}

// RecordOrderFailed увеличивает счётчик неудачных оформлений.
func (m *FulfillmentMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordInsufficientStock увеличивает счётчик отказов из-за нехватки товара.
func (m *FulfillmentMetrics) RecordInsufficientStock() {
	m.insufficientStock.Inc()
}

// RecordReservationUndone увеличивает счётчик откатов резервирования.
func (m *FulfillmentMetrics) RecordReservationUndone() {
	m.reservationsUndone.Inc()
}

// RecordFulfillmentDuration записывает время оформления заказа.
func (m *FulfillmentMetrics) RecordFulfillmentDuration(duration time.Duration) {
	m.fulfillmentDuration.Observe(duration.Seconds())
}

// RecordStageDuration записывает время выполнения этапа оформления.
func (m *FulfillmentMetrics) RecordStageDuration(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *FulfillmentMetrics) RecordTimelineEvent() {
	m.timelineEvents.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *FulfillmentMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}
