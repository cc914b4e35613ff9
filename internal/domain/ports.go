package domain

import "time"

// Notifier — исходящие уведомления покупателю. Вызовы fire-and-forget:
// ядро не интересуется результатом доставки, ошибки не всплывают.
type Notifier interface {
	// SendOrderReceived отправляется сразу после оформления заказа.
	SendOrderReceived(order Order)
	// SendOrderConfirmed отправляется после финализации заказа.
	SendOrderConfirmed(order Order)
}

// AuthenticationHelper — подключаемая криптография учётных записей.
// Детали хеширования и формата токена ядру не видны.
type AuthenticationHelper interface {
	// GenerateSalt возвращает свежую случайную соль.
	GenerateSalt() ([]byte, error)
	// GenerateHash считает хеш пароля с данной солью.
	GenerateHash(password string, salt []byte) []byte
	// ValidateLogin сверяет введённый пароль с сохранённым хешем.
	ValidateLogin(user User, input LoginInput) error
	// GenerateToken выпускает токен доступа для учётной записи.
	GenerateToken(user User) (string, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID int64) ([]TimelineEvent, error)
}

// SubmissionRepository хранит состояние идемпотентной отправки заказа
// по ключу, который выбирает вызывающая сторона.
type SubmissionRepository interface {
	CreateProcessing(key, requestHash string, ttlAt time.Time) (SubmissionRecord, error)
	Get(key string) (SubmissionRecord, error)
	MarkDone(key string, outcome []byte) error
	MarkFailed(key string, outcome []byte) error
	DeleteExpired(before time.Time, limit int) (int, error)
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	OrderID  int64
	Type     string
	Reason   string
	Occurred time.Time
}
