package order

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

// submissionTTL ограничивает срок жизни записи идемпотентной отправки;
// просроченные записи убирает cleanup worker.
const submissionTTL = 24 * time.Hour

// submissionOutcome — сериализованный результат отправки, который
// повторный запрос с тем же ключом получает без повторного оформления.
type submissionOutcome struct {
	Order        *domain.Order    `json:"order,omitempty"`
	ErrorKind    domain.ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
}

// PlaceOrderIdempotent оформляет заказ не более одного раза на ключ,
// выбранный вызывающей стороной. Повтор с тем же ключом и тем же телом
// воспроизводит записанный результат; тот же ключ с другим телом — ошибка.
func (s *Service) PlaceOrderIdempotent(key string, order *domain.Order) (domain.Order, error) {
	if s.submissions == nil {
		return s.PlaceOrder(order)
	}
	if key == "" {
		return domain.Order{}, domain.ErrSubmissionKeyRequired
	}

	hash, err := hashOrderRequest(order)
	if err != nil {
		return domain.Order{}, err
	}

	_, err = s.submissions.CreateProcessing(key, hash, time.Now().UTC().Add(submissionTTL))
	switch err {
	case nil:
		// Первая отправка с этим ключом.
	case domain.ErrSubmissionExists:
		return s.replaySubmission(key)
	default:
		return domain.Order{}, err
	}

	placed, placeErr := s.PlaceOrder(order)
	if placeErr != nil {
		s.recordSubmissionOutcome(key, submissionOutcome{
			ErrorKind:    domain.KindOf(placeErr),
			ErrorMessage: placeErr.Error(),
		}, false)
		return domain.Order{}, placeErr
	}

	s.recordSubmissionOutcome(key, submissionOutcome{Order: &placed}, true)
	return placed, nil
}

func (s *Service) replaySubmission(key string) (domain.Order, error) {
	record, err := s.submissions.Get(key)
	if err != nil {
		return domain.Order{}, err
	}

	switch record.Status {
	case domain.SubmissionStatusProcessing:
		return domain.Order{}, domain.NewError(domain.KindConflict, "order submission is still processing")
	case domain.SubmissionStatusDone, domain.SubmissionStatusFailed:
		var outcome submissionOutcome
		if err := json.Unmarshal(record.Outcome, &outcome); err != nil {
			return domain.Order{}, err
		}
		if record.Status == domain.SubmissionStatusDone && outcome.Order != nil {
			s.logger.WithField("submission_key", key).Debug("replayed recorded order placement")
			return *outcome.Order, nil
		}
		return domain.Order{}, domain.NewError(outcome.ErrorKind, outcome.ErrorMessage)
	default:
		return domain.Order{}, domain.ErrSubmissionNotFound
	}
}

func (s *Service) recordSubmissionOutcome(key string, outcome submissionOutcome, done bool) {
	data, err := json.Marshal(outcome)
	if err != nil {
		s.logger.WithError(err).WithField("submission_key", key).Error("marshal submission outcome failed")
		return
	}

	if done {
		err = s.submissions.MarkDone(key, data)
	} else {
		err = s.submissions.MarkFailed(key, data)
	}
	if err != nil {
		s.logger.WithError(err).WithField("submission_key", key).Error("persist submission outcome failed")
	}
}

// hashOrderRequest считает стабильный хеш содержимого запроса: тот же
// ключ с другим содержимым должен быть отвергнут.
func hashOrderRequest(order *domain.Order) (string, error) {
	if order == nil {
		return "", domain.ErrOrderMissing
	}

	canonical := struct {
		CustomerID int64              `json:"customer_id"`
		Lines      []domain.OrderLine `json:"lines"`
	}{
		CustomerID: order.CustomerID,
		Lines:      order.Lines,
	}

	data, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
