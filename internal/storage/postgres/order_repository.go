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

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Add сохраняет заказ вместе с позициями в одной транзакции.
func (r *orderRepository) Add(order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	order.UpdatedAt = order.CreatedAt

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if order.ID == 0 {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (customer_id, accumulated_price_minor, finished, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, order.CustomerID, order.AccumulatedPriceMinor, order.Finished, order.CreatedAt, order.UpdatedAt).Scan(&order.ID)
		if err != nil {
			err = fmt.Errorf("insert order: %w", err)
			return domain.Order{}, err
		}
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO orders (id, customer_id, accumulated_price_minor, finished, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, order.ID, order.CustomerID, order.AccumulatedPriceMinor, order.Finished, order.CreatedAt, order.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				err = domain.ErrDuplicateID
				return domain.Order{}, err
			}
			err = fmt.Errorf("insert order with id: %w", err)
			return domain.Order{}, err
		}
		if err = syncIDSequence(ctx, tx, "orders"); err != nil {
			return domain.Order{}, err
		}
	}

	if err = insertLinesTx(ctx, tx, order.ID, order.Lines); err != nil {
		return domain.Order{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit add order: %w", err)
	}

	order.Lines = order.CloneLines()
	return order, nil
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.getWhere(ctx, `WHERE id = $1`, id)
}

// GetForCustomer возвращает заказ, только если он принадлежит покупателю.
// Чужой заказ неотличим от несуществующего.
func (r *orderRepository) GetForCustomer(orderID, customerID int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.getWhere(ctx, `WHERE id = $1 AND customer_id = $2`, orderID, customerID)
}

// List возвращает страницу заказов: Filter.OrderFinished выбирает
// финализированные либо открытые.
func (r *orderRepository) List(filter domain.Filter) (domain.FilterList[domain.Order], error) {
	clauses := []string{`finished = $1`}
	args := []any{filter.OrderFinished}
	// Поиск по имени и фильтр по типу к заказам не применимы: такой
	// фильтр даёт пустую выборку, как и в общем контракте списков.
	if filter.Name != "" || filter.BeerTypeID != 0 {
		clauses = append(clauses, `FALSE`)
	}

	orderBy := `ORDER BY id ASC`
	if strings.ToLower(filter.SortDir) == domain.SortDesc && filter.SortKey == domain.SortKeyAdded {
		orderBy = `ORDER BY id DESC`
	}

	return r.list(filter, clauses, args, orderBy)
}

// ListByCustomer возвращает страницу заказов покупателя; применяется
// только постраничный срез, без поиска и сортировки.
func (r *orderRepository) ListByCustomer(customerID int64, filter domain.Filter) (domain.FilterList[domain.Order], error) {
	clauses := []string{`customer_id = $1`}
	args := []any{customerID}
	if filter.Name != "" || filter.BeerTypeID != 0 {
		clauses = append(clauses, `FALSE`)
	}

	return r.list(filter, clauses, args, `ORDER BY id ASC`)
}

// Update перезаписывает заказ вместе с позициями, не трогая дату создания.
func (r *orderRepository) Update(order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	order.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET customer_id = $1,
		    accumulated_price_minor = $2,
		    finished = $3,
		    updated_at = $4
		WHERE id = $5
		RETURNING created_at
	`, order.CustomerID, order.AccumulatedPriceMinor, order.Finished, order.UpdatedAt, order.ID).Scan(&order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrOrderNotFound
			return domain.Order{}, err
		}
		err = fmt.Errorf("update order: %w", err)
		return domain.Order{}, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
		err = fmt.Errorf("clear order lines: %w", err)
		return domain.Order{}, err
	}
	if err = insertLinesTx(ctx, tx, order.ID, order.Lines); err != nil {
		return domain.Order{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit update order: %w", err)
	}

	order.Lines = order.CloneLines()
	return order, nil
}

// Delete удаляет заказ вместе с позициями и возвращает удалённое состояние.
func (r *orderRepository) Delete(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	order, err := r.getWhere(ctx, `WHERE id = $1`, id)
	if err != nil {
		return domain.Order{}, err
	}

	// Позиции уходят каскадом по внешнему ключу.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return domain.Order{}, fmt.Errorf("delete order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) getWhere(ctx context.Context, where string, args ...any) (domain.Order, error) {
	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, accumulated_price_minor, finished, created_at, updated_at
		FROM orders
	`+where, args...).Scan(
		&order.ID, &order.CustomerID, &order.AccumulatedPriceMinor, &order.Finished,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Lines = lines

	return order, nil
}

func (r *orderRepository) list(filter domain.Filter, clauses []string, args []any, orderBy string) (domain.FilterList[domain.Order], error) {
	if err := validatePaging(filter); err != nil {
		return domain.FilterList[domain.Order]{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where := ` WHERE ` + strings.Join(clauses, ` AND `)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return domain.FilterList[domain.Order]{}, fmt.Errorf("count orders: %w", err)
	}

	query := `
		SELECT id, customer_id, accumulated_price_minor, finished, created_at, updated_at
		FROM orders
	` + where + ` ` + orderBy
	if limit, offset, ok := pageBounds(filter); ok {
		args = append(args, limit, offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.FilterList[domain.Order]{}, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.AccumulatedPriceMinor, &order.Finished,
			&order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return domain.FilterList[domain.Order]{}, fmt.Errorf("scan order row: %w", err)
		}
		items = append(items, order)
	}
	if err := rows.Err(); err != nil {
		return domain.FilterList[domain.Order]{}, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range items {
		lines, err := r.loadLines(ctx, items[i].ID)
		if err != nil {
			return domain.FilterList[domain.Order]{}, err
		}
		items[i].Lines = lines
	}

	if pageOutOfBounds(filter, len(items)) {
		return domain.FilterList[domain.Order]{}, domain.ErrIndexOutOfBounds
	}

	return domain.FilterList[domain.Order]{TotalItems: total, Items: items}, nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT beer_id, amount
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.BeerID, &line.Amount); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, nil
}

func insertLinesTx(ctx context.Context, tx *sql.Tx, orderID int64, lines []domain.OrderLine) error {
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, beer_id, amount)
			VALUES ($1,$2,$3)
		`, orderID, line.BeerID, line.Amount); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
