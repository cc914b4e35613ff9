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

const beerColumns = `id, name, description, price_minor, percentage, ibu, ebc, stock, image_url, type_id, brand_id, created_at, updated_at`

type beerRepository struct {
	db *sql.DB
}

// NewBeerRepository создаёт PostgreSQL-реализацию BeerRepository.
func NewBeerRepository(store *Store) domain.BeerRepository {
	return &beerRepository{db: store.DB()}
}

func (r *beerRepository) Add(beer domain.Beer) (domain.Beer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	now := time.Now().UTC()
	if beer.CreatedAt.IsZero() {
		beer.CreatedAt = now
	}
	beer.UpdatedAt = now

	if beer.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO beers (
				name, description, price_minor, percentage, ibu, ebc,
				stock, image_url, type_id, brand_id, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			RETURNING id
		`,
			beer.Name, beer.Description, beer.PriceMinor, beer.Percentage, beer.IBU, beer.EBC,
			beer.Stock, beer.ImageURL, beer.TypeID, beer.BrandID, beer.CreatedAt, beer.UpdatedAt,
		).Scan(&beer.ID)
		if err != nil {
			return domain.Beer{}, fmt.Errorf("insert beer: %w", err)
		}
		return beer, nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO beers (
			id, name, description, price_minor, percentage, ibu, ebc,
			stock, image_url, type_id, brand_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		beer.ID, beer.Name, beer.Description, beer.PriceMinor, beer.Percentage, beer.IBU, beer.EBC,
		beer.Stock, beer.ImageURL, beer.TypeID, beer.BrandID, beer.CreatedAt, beer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Beer{}, domain.ErrDuplicateID
		}
		return domain.Beer{}, fmt.Errorf("insert beer with id: %w", err)
	}
	if err := syncIDSequence(ctx, r.db, "beers"); err != nil {
		return domain.Beer{}, err
	}

	return beer, nil
}

func (r *beerRepository) Get(id int64) (domain.Beer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	beer, err := scanBeer(r.db.QueryRowContext(ctx, `
		SELECT `+beerColumns+`
		FROM beers
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Beer{}, domain.ErrBeerNotFound
		}
		return domain.Beer{}, fmt.Errorf("select beer: %w", err)
	}

	return beer, nil
}

// List применяет общий фильтр-контракт на стороне SQL: поиск по подстроке
// имени, фильтр по типу, сортировку и постраничный срез.
func (r *beerRepository) List(filter domain.Filter) (domain.FilterList[domain.Beer], error) {
	if err := validatePaging(filter); err != nil {
		return domain.FilterList[domain.Beer]{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where, args := beerListWhere(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM beers`+where, args...).Scan(&total); err != nil {
		return domain.FilterList[domain.Beer]{}, fmt.Errorf("count beers: %w", err)
	}

	query := `SELECT ` + beerColumns + ` FROM beers` + where + ` ` + beerOrderClause(filter)
	if limit, offset, ok := pageBounds(filter); ok {
		args = append(args, limit, offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.FilterList[domain.Beer]{}, fmt.Errorf("list beers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Beer, 0)
	for rows.Next() {
		beer, err := scanBeer(rows)
		if err != nil {
			return domain.FilterList[domain.Beer]{}, fmt.Errorf("scan beer row: %w", err)
		}
		items = append(items, beer)
	}
	if err := rows.Err(); err != nil {
		return domain.FilterList[domain.Beer]{}, fmt.Errorf("iterate beer rows: %w", err)
	}

	if pageOutOfBounds(filter, len(items)) {
		return domain.FilterList[domain.Beer]{}, domain.ErrIndexOutOfBounds
	}

	return domain.FilterList[domain.Beer]{TotalItems: total, Items: items}, nil
}

func (r *beerRepository) Update(beer domain.Beer) (domain.Beer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	beer.UpdatedAt = time.Now().UTC()

	err := r.db.QueryRowContext(ctx, `
		UPDATE beers
		SET name = $1,
		    description = $2,
		    price_minor = $3,
		    percentage = $4,
		    ibu = $5,
		    ebc = $6,
		    stock = $7,
		    image_url = $8,
		    type_id = $9,
		    brand_id = $10,
		    updated_at = $11
		WHERE id = $12
		RETURNING created_at
	`,
		beer.Name, beer.Description, beer.PriceMinor, beer.Percentage, beer.IBU, beer.EBC,
		beer.Stock, beer.ImageURL, beer.TypeID, beer.BrandID, beer.UpdatedAt, beer.ID,
	).Scan(&beer.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Beer{}, domain.ErrBeerNotFound
		}
		return domain.Beer{}, fmt.Errorf("update beer: %w", err)
	}

	return beer, nil
}

func (r *beerRepository) Delete(id int64) (domain.Beer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	beer, err := scanBeer(r.db.QueryRowContext(ctx, `
		DELETE FROM beers
		WHERE id = $1
		RETURNING `+beerColumns+`
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Beer{}, domain.ErrBeerNotFound
		}
		return domain.Beer{}, fmt.Errorf("delete beer: %w", err)
	}

	return beer, nil
}

// ReserveStock списывает остатки по всем позициям в одной транзакции.
// Условный UPDATE stock >= amount не даёт двум конкурентным заказам
// распродать остаток в минус: позиция без остатка откатывает всё.
func (r *beerRepository) ReserveStock(lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for _, line := range lines {
		var res sql.Result
		res, err = tx.ExecContext(ctx, `
			UPDATE beers
			SET stock = stock - $1,
			    updated_at = $2
			WHERE id = $3
			  AND stock >= $1
		`, line.Amount, now, line.BeerID)
		if err != nil {
			return fmt.Errorf("reserve stock for beer %d: %w", line.BeerID, err)
		}

		var affected int64
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reserve stock rows affected: %w", err)
		}
		if affected == 0 {
			var exists bool
			exists, err = beerExistsTx(ctx, tx, line.BeerID)
			if err != nil {
				return err
			}
			if !exists {
				err = domain.ErrBeerNotFound
				return err
			}
			err = domain.ErrInsufficientStock
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reserve stock: %w", err)
	}

	return nil
}

// ReleaseStock возвращает остатки на склад. Пропавшие за это время записи
// молча пропускаются: компенсация не должна падать из-за гонки с удалением.
func (r *beerRepository) ReleaseStock(lines []domain.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	for _, line := range lines {
		if _, err = tx.ExecContext(ctx, `
			UPDATE beers
			SET stock = stock + $1,
			    updated_at = $2
			WHERE id = $3
		`, line.Amount, now, line.BeerID); err != nil {
			return fmt.Errorf("release stock for beer %d: %w", line.BeerID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit release stock: %w", err)
	}

	return nil
}

func beerListWhere(filter domain.Filter) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.Name != "" {
		args = append(args, filter.Name)
		clauses = append(clauses, fmt.Sprintf(`name ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if filter.BeerTypeID != 0 {
		args = append(args, filter.BeerTypeID)
		clauses = append(clauses, fmt.Sprintf(`type_id = $%d`, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// beerOrderClause отображает ключи сортировки каталога на ORDER BY.
// Неизвестный ключ оставляет порядок добавления; «свежесть» (ADDED)
// работает только на нисходящей ветке.
func beerOrderClause(filter domain.Filter) string {
	switch strings.ToLower(filter.SortDir) {
	case "", domain.SortAsc:
		switch filter.SortKey {
		case domain.SortKeyIBU:
			return `ORDER BY ibu ASC, id ASC`
		case domain.SortKeyEBC:
			return `ORDER BY ebc ASC, id ASC`
		case domain.SortKeyAlphabetical:
			return `ORDER BY LOWER(name) ASC, id ASC`
		}
	case domain.SortDesc:
		switch filter.SortKey {
		case domain.SortKeyIBU:
			return `ORDER BY ibu DESC, id ASC`
		case domain.SortKeyEBC:
			return `ORDER BY ebc DESC, id ASC`
		case domain.SortKeyAlphabetical:
			return `ORDER BY LOWER(name) DESC, id ASC`
		case domain.SortKeyAdded:
			return `ORDER BY id DESC`
		}
	}
	return `ORDER BY id ASC`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBeer(row rowScanner) (domain.Beer, error) {
	var beer domain.Beer
	err := row.Scan(
		&beer.ID, &beer.Name, &beer.Description, &beer.PriceMinor, &beer.Percentage,
		&beer.IBU, &beer.EBC, &beer.Stock, &beer.ImageURL, &beer.TypeID, &beer.BrandID,
		&beer.CreatedAt, &beer.UpdatedAt,
	)
	return beer, err
}

func beerExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var found int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM beers WHERE id = $1`, id).Scan(&found)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check beer exists: %w", err)
}

var _ domain.BeerRepository = (*beerRepository)(nil)
