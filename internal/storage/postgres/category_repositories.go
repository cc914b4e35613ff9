package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

type beerTypeRepository struct {
	db *sql.DB
}

// NewBeerTypeRepository создаёт PostgreSQL-реализацию BeerTypeRepository.
func NewBeerTypeRepository(store *Store) domain.BeerTypeRepository {
	return &beerTypeRepository{db: store.DB()}
}

func (r *beerTypeRepository) Add(beerType domain.BeerType) (domain.BeerType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if beerType.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO beer_types (type_name) VALUES ($1)
			RETURNING id
		`, beerType.TypeName).Scan(&beerType.ID)
		if err != nil {
			return domain.BeerType{}, fmt.Errorf("insert beer type: %w", err)
		}
		return beerType, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO beer_types (id, type_name) VALUES ($1, $2)
	`, beerType.ID, beerType.TypeName); err != nil {
		if isUniqueViolation(err) {
			return domain.BeerType{}, domain.ErrDuplicateID
		}
		return domain.BeerType{}, fmt.Errorf("insert beer type with id: %w", err)
	}
	if err := syncIDSequence(ctx, r.db, "beer_types"); err != nil {
		return domain.BeerType{}, err
	}

	return beerType, nil
}

func (r *beerTypeRepository) Get(id int64) (domain.BeerType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var beerType domain.BeerType
	err := r.db.QueryRowContext(ctx, `
		SELECT id, type_name FROM beer_types WHERE id = $1
	`, id).Scan(&beerType.ID, &beerType.TypeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BeerType{}, domain.ErrTypeNotFound
		}
		return domain.BeerType{}, fmt.Errorf("select beer type: %w", err)
	}

	return beerType, nil
}

func (r *beerTypeRepository) List(filter domain.Filter) (domain.FilterList[domain.BeerType], error) {
	if err := validatePaging(filter); err != nil {
		return domain.FilterList[domain.BeerType]{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where, args := namedListWhere(filter, "type_name")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM beer_types`+where, args...).Scan(&total); err != nil {
		return domain.FilterList[domain.BeerType]{}, fmt.Errorf("count beer types: %w", err)
	}

	query := `SELECT id, type_name FROM beer_types` + where + ` ` + namedOrderClause(filter, "type_name")
	if limit, offset, ok := pageBounds(filter); ok {
		args = append(args, limit, offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.FilterList[domain.BeerType]{}, fmt.Errorf("list beer types: %w", err)
	}
	defer rows.Close()

	items := make([]domain.BeerType, 0)
	for rows.Next() {
		var beerType domain.BeerType
		if err := rows.Scan(&beerType.ID, &beerType.TypeName); err != nil {
			return domain.FilterList[domain.BeerType]{}, fmt.Errorf("scan beer type row: %w", err)
		}
		items = append(items, beerType)
	}
	if err := rows.Err(); err != nil {
		return domain.FilterList[domain.BeerType]{}, fmt.Errorf("iterate beer type rows: %w", err)
	}

	if pageOutOfBounds(filter, len(items)) {
		return domain.FilterList[domain.BeerType]{}, domain.ErrIndexOutOfBounds
	}

	return domain.FilterList[domain.BeerType]{TotalItems: total, Items: items}, nil
}

func (r *beerTypeRepository) Update(beerType domain.BeerType) (domain.BeerType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE beer_types SET type_name = $1 WHERE id = $2
	`, beerType.TypeName, beerType.ID)
	if err != nil {
		return domain.BeerType{}, fmt.Errorf("update beer type: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.BeerType{}, fmt.Errorf("beer type rows affected: %w", err)
	}
	if affected == 0 {
		return domain.BeerType{}, domain.ErrTypeNotFound
	}

	return beerType, nil
}

func (r *beerTypeRepository) Delete(id int64) (domain.BeerType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var beerType domain.BeerType
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM beer_types WHERE id = $1
		RETURNING id, type_name
	`, id).Scan(&beerType.ID, &beerType.TypeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BeerType{}, domain.ErrTypeNotFound
		}
		return domain.BeerType{}, fmt.Errorf("delete beer type: %w", err)
	}

	return beerType, nil
}

type brandRepository struct {
	db *sql.DB
}

// NewBrandRepository создаёт PostgreSQL-реализацию BrandRepository.
func NewBrandRepository(store *Store) domain.BrandRepository {
	return &brandRepository{db: store.DB()}
}

func (r *brandRepository) Add(brand domain.Brand) (domain.Brand, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if brand.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO brands (brand_name) VALUES ($1)
			RETURNING id
		`, brand.BrandName).Scan(&brand.ID)
		if err != nil {
			return domain.Brand{}, fmt.Errorf("insert brand: %w", err)
		}
		return brand, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO brands (id, brand_name) VALUES ($1, $2)
	`, brand.ID, brand.BrandName); err != nil {
		if isUniqueViolation(err) {
			return domain.Brand{}, domain.ErrDuplicateID
		}
		return domain.Brand{}, fmt.Errorf("insert brand with id: %w", err)
	}
	if err := syncIDSequence(ctx, r.db, "brands"); err != nil {
		return domain.Brand{}, err
	}

	return brand, nil
}

func (r *brandRepository) Get(id int64) (domain.Brand, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var brand domain.Brand
	err := r.db.QueryRowContext(ctx, `
		SELECT id, brand_name FROM brands WHERE id = $1
	`, id).Scan(&brand.ID, &brand.BrandName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Brand{}, domain.ErrBrandNotFound
		}
		return domain.Brand{}, fmt.Errorf("select brand: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) List(filter domain.Filter) (domain.FilterList[domain.Brand], error) {
	if err := validatePaging(filter); err != nil {
		return domain.FilterList[domain.Brand]{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	where, args := namedListWhere(filter, "brand_name")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands`+where, args...).Scan(&total); err != nil {
		return domain.FilterList[domain.Brand]{}, fmt.Errorf("count brands: %w", err)
	}

	query := `SELECT id, brand_name FROM brands` + where + ` ` + namedOrderClause(filter, "brand_name")
	if limit, offset, ok := pageBounds(filter); ok {
		args = append(args, limit, offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.FilterList[domain.Brand]{}, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Brand, 0)
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(&brand.ID, &brand.BrandName); err != nil {
			return domain.FilterList[domain.Brand]{}, fmt.Errorf("scan brand row: %w", err)
		}
		items = append(items, brand)
	}
	if err := rows.Err(); err != nil {
		return domain.FilterList[domain.Brand]{}, fmt.Errorf("iterate brand rows: %w", err)
	}

	if pageOutOfBounds(filter, len(items)) {
		return domain.FilterList[domain.Brand]{}, domain.ErrIndexOutOfBounds
	}

	return domain.FilterList[domain.Brand]{TotalItems: total, Items: items}, nil
}

func (r *brandRepository) Update(brand domain.Brand) (domain.Brand, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE brands SET brand_name = $1 WHERE id = $2
	`, brand.BrandName, brand.ID)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("update brand: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Brand{}, fmt.Errorf("brand rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Brand{}, domain.ErrBrandNotFound
	}

	return brand, nil
}

func (r *brandRepository) Delete(id int64) (domain.Brand, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var brand domain.Brand
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM brands WHERE id = $1
		RETURNING id, brand_name
	`, id).Scan(&brand.ID, &brand.BrandName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Brand{}, domain.ErrBrandNotFound
		}
		return domain.Brand{}, fmt.Errorf("delete brand: %w", err)
	}

	return brand, nil
}

// namedListWhere строит WHERE для сущностей, у которых фильтруемое имя
// лежит в одной колонке. Фильтр по типу пива к таким сущностям не
// применим и даёт пустую выборку, как и в общем контракте списков.
func namedListWhere(filter domain.Filter, nameColumn string) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 1)

	if filter.Name != "" {
		args = append(args, filter.Name)
		clauses = append(clauses, fmt.Sprintf(`%s ILIKE '%%' || $%d || '%%'`, nameColumn, len(args)))
	}
	if filter.BeerTypeID != 0 {
		clauses = append(clauses, `FALSE`)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// namedOrderClause поддерживает алфавитную сортировку и «свежесть»;
// неизвестный ключ оставляет порядок добавления.
func namedOrderClause(filter domain.Filter, nameColumn string) string {
	switch strings.ToLower(filter.SortDir) {
	case "", domain.SortAsc:
		if filter.SortKey == domain.SortKeyAlphabetical {
			return fmt.Sprintf(`ORDER BY LOWER(%s) ASC, id ASC`, nameColumn)
		}
	case domain.SortDesc:
		switch filter.SortKey {
		case domain.SortKeyAlphabetical:
			return fmt.Sprintf(`ORDER BY LOWER(%s) DESC, id ASC`, nameColumn)
		case domain.SortKeyAdded:
			return `ORDER BY id DESC`
		}
	}
	return `ORDER BY id ASC`
}

var _ domain.BeerTypeRepository = (*beerTypeRepository)(nil)
var _ domain.BrandRepository = (*brandRepository)(nil)
