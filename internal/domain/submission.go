package domain

import "time"

// SubmissionStatus описывает жизненный цикл ключа идемпотентной отправки.
type SubmissionStatus string

const (
	// SubmissionStatusProcessing — заказ принят и ещё оформляется.
	SubmissionStatusProcessing SubmissionStatus = "processing"
	// SubmissionStatusDone — оформление завершилось успешно, итог сохранён.
	SubmissionStatusDone SubmissionStatus = "done"
	// SubmissionStatusFailed — оформление завершилось ошибкой.
	SubmissionStatusFailed SubmissionStatus = "failed"
)

// SubmissionRecord хранит состояние обработки заказа с ключом идемпотентности.
type SubmissionRecord struct {
	Key         string
	RequestHash string
	// Outcome — сериализованный итог первой обработки: ID заказа либо ошибка.
	Outcome   []byte
	Status    SubmissionStatus
	TTLAt     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusProcessing, SubmissionStatusDone, SubmissionStatusFailed:
		return true
	default:
		return false
	}
}
