package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Add(customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if customer.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO customers (
				first_name, last_name, email, phone_number,
				street_name, postal_code, city_name, user_id
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`,
			customer.FirstName, customer.LastName, customer.Email, customer.PhoneNumber,
			customer.StreetName, customer.PostalCode, customer.CityName, customer.UserID,
		).Scan(&customer.ID)
		if err != nil {
			return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
		}
		return customer, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (
			id, first_name, last_name, email, phone_number,
			street_name, postal_code, city_name, user_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		customer.ID, customer.FirstName, customer.LastName, customer.Email, customer.PhoneNumber,
		customer.StreetName, customer.PostalCode, customer.CityName, customer.UserID,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.ErrDuplicateID
		}
		return domain.Customer{}, fmt.Errorf("insert customer with id: %w", err)
	}
	if err := syncIDSequence(ctx, r.db, "customers"); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func (r *customerRepository) Get(id int64) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, phone_number,
		       street_name, postal_code, city_name, user_id
		FROM customers
		WHERE id = $1
	`, id).Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.PhoneNumber,
		&customer.StreetName, &customer.PostalCode, &customer.CityName, &customer.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) Update(customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET first_name = $1,
		    last_name = $2,
		    email = $3,
		    phone_number = $4,
		    street_name = $5,
		    postal_code = $6,
		    city_name = $7,
		    user_id = $8
		WHERE id = $9
	`,
		customer.FirstName, customer.LastName, customer.Email, customer.PhoneNumber,
		customer.StreetName, customer.PostalCode, customer.CityName, customer.UserID,
		customer.ID,
	)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customer rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	return customer, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
