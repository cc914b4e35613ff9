package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

type submissionRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.SubmissionRecord
}

// NewSubmissionRepository создаёт in-memory реализацию SubmissionRepository.
func NewSubmissionRepository() domain.SubmissionRepository {
	return &submissionRepositoryInMemory{
		items: make(map[string]domain.SubmissionRecord),
	}
}

func (r *submissionRepositoryInMemory) CreateProcessing(key, requestHash string, ttlAt time.Time) (domain.SubmissionRecord, error) {
	key = strings.TrimSpace(key)
	requestHash = strings.TrimSpace(requestHash)

	if key == "" {
		return domain.SubmissionRecord{}, domain.ErrSubmissionKeyRequired
	}
	if requestHash == "" {
		return domain.SubmissionRecord{}, domain.ErrSubmissionHashRequired
	}

	now := time.Now().UTC()
	if ttlAt.IsZero() {
		ttlAt = now.Add(24 * time.Hour)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[key]; ok {
		if existing.RequestHash != requestHash {
			return cloneSubmissionRecord(existing), domain.ErrSubmissionHashMismatch
		}
		return cloneSubmissionRecord(existing), domain.ErrSubmissionExists
	}

	record := domain.SubmissionRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      domain.SubmissionStatusProcessing,
		TTLAt:       ttlAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.items[key] = cloneSubmissionRecord(record)
	return cloneSubmissionRecord(record), nil
}

func (r *submissionRepositoryInMemory) Get(key string) (domain.SubmissionRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.SubmissionRecord{}, domain.ErrSubmissionKeyRequired
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[key]
	if !ok {
		return domain.SubmissionRecord{}, domain.ErrSubmissionNotFound
	}
	return cloneSubmissionRecord(record), nil
}

func (r *submissionRepositoryInMemory) MarkDone(key string, outcome []byte) error {
	return r.markStatus(key, domain.SubmissionStatusDone, outcome)
}

func (r *submissionRepositoryInMemory) MarkFailed(key string, outcome []byte) error {
	return r.markStatus(key, domain.SubmissionStatusFailed, outcome)
}

func (r *submissionRepositoryInMemory) DeleteExpired(before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, record := range r.items {
		if record.TTLAt.After(before) {
			continue
		}
		delete(r.items, key)
		removed++
		if limit > 0 && removed >= limit {
			break
		}
	}
	return removed, nil
}

func (r *submissionRepositoryInMemory) markStatus(key string, status domain.SubmissionStatus, outcome []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrSubmissionKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[key]
	if !ok {
		return domain.ErrSubmissionNotFound
	}

	record.Status = status
	record.Outcome = append([]byte(nil), outcome...)
	record.UpdatedAt = time.Now().UTC()
	r.items[key] = record
	return nil
}

func cloneSubmissionRecord(src domain.SubmissionRecord) domain.SubmissionRecord {
	dst := src
	dst.Outcome = append([]byte(nil), src.Outcome...)
	return dst
}

var _ domain.SubmissionRepository = (*submissionRepositoryInMemory)(nil)
