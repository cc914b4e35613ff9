package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

type submissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository создаёт PostgreSQL-реализацию SubmissionRepository.
func NewSubmissionRepository(store *Store) domain.SubmissionRepository {
	return &submissionRepository{db: store.DB()}
}

func (r *submissionRepository) CreateProcessing(key, requestHash string, ttlAt time.Time) (domain.SubmissionRecord, error) {
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

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_submissions (
			key, request_hash, outcome, status, ttl_at, created_at, updated_at
		) VALUES ($1,$2,NULL,$3,$4,$5,$6)
	`,
		key,
		requestHash,
		string(domain.SubmissionStatusProcessing),
		ttlAt,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			existing, getErr := r.Get(key)
			if getErr != nil {
				return domain.SubmissionRecord{}, domain.ErrSubmissionExists
			}
			if existing.RequestHash != requestHash {
				return existing, domain.ErrSubmissionHashMismatch
			}
			return existing, domain.ErrSubmissionExists
		}
		return domain.SubmissionRecord{}, fmt.Errorf("create submission record: %w", err)
	}

	return domain.SubmissionRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      domain.SubmissionStatusProcessing,
		TTLAt:       ttlAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r *submissionRepository) Get(key string) (domain.SubmissionRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.SubmissionRecord{}, domain.ErrSubmissionKeyRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		record    domain.SubmissionRecord
		statusRaw string
		outcome   []byte
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT key, request_hash, outcome, status, ttl_at, created_at, updated_at
		FROM order_submissions
		WHERE key = $1
	`, key).Scan(
		&record.Key,
		&record.RequestHash,
		&outcome,
		&statusRaw,
		&record.TTLAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SubmissionRecord{}, domain.ErrSubmissionNotFound
		}
		return domain.SubmissionRecord{}, fmt.Errorf("get submission record: %w", err)
	}

	record.Status = domain.SubmissionStatus(statusRaw)
	if !record.Status.Valid() {
		return domain.SubmissionRecord{}, fmt.Errorf("invalid submission status %q for key %s", statusRaw, key)
	}
	record.Outcome = append([]byte(nil), outcome...)

	return record, nil
}

func (r *submissionRepository) MarkDone(key string, outcome []byte) error {
	return r.markStatus(key, domain.SubmissionStatusDone, outcome)
}

func (r *submissionRepository) MarkFailed(key string, outcome []byte) error {
	return r.markStatus(key, domain.SubmissionStatusFailed, outcome)
}

func (r *submissionRepository) DeleteExpired(before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		res sql.Result
		err error
	)

	if limit > 0 {
		res, err = r.db.ExecContext(ctx, `
			DELETE FROM order_submissions
			WHERE key IN (
				SELECT key
				FROM order_submissions
				WHERE ttl_at <= $1
				ORDER BY ttl_at ASC
				LIMIT $2
			)
		`, before, limit)
	} else {
		res, err = r.db.ExecContext(ctx, `
			DELETE FROM order_submissions
			WHERE ttl_at <= $1
		`, before)
	}
	if err != nil {
		return 0, fmt.Errorf("delete expired submission records: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("submission rows affected: %w", err)
	}

	return int(affected), nil
}

func (r *submissionRepository) markStatus(key string, status domain.SubmissionStatus, outcome []byte) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrSubmissionKeyRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE order_submissions
		SET outcome = $1,
		    status = $2,
		    updated_at = $3
		WHERE key = $4
	`,
		outcome,
		string(status),
		time.Now().UTC(),
		key,
	)
	if err != nil {
		return fmt.Errorf("mark submission status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("submission rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrSubmissionNotFound
	}

	return nil
}

var _ domain.SubmissionRepository = (*submissionRepository)(nil)
