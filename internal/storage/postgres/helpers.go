package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

const opTimeout = 5 * time.Second

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// isUniqueViolation распознаёт нарушение уникального ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// syncIDSequence подтягивает sequence таблицы после вставки с явным ID,
// чтобы следующие автоназначаемые ID не конфликтовали с уже занятыми.
func syncIDSequence(ctx context.Context, db execer, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 1) FROM %s), 1))`,
		table, table,
	)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("sync id sequence for %s: %w", table, err)
	}
	return nil
}

// validatePaging проверяет общий контракт постраничности: отрицательные
// значения страницы или размера — ошибка.
func validatePaging(filter domain.Filter) error {
	if filter.CurrentPage < 0 || filter.ItemsPerPage < 0 {
		return domain.ErrInvalidPaging
	}
	return nil
}

// pageBounds возвращает LIMIT/OFFSET для фильтра; ok=false означает
// «без постраничности».
func pageBounds(filter domain.Filter) (limit, offset int, ok bool) {
	if filter.CurrentPage <= 0 {
		return 0, 0, false
	}
	return filter.ItemsPerPage, (filter.CurrentPage - 1) * filter.ItemsPerPage, true
}

// pageOutOfBounds сообщает, что запрошенная страница лежит за пределами
// выборки. Пустая первая страница — легальный пустой результат, пустая
// вторая и дальше — ошибка.
func pageOutOfBounds(filter domain.Filter, got int) bool {
	return got == 0 && filter.CurrentPage > 1
}
