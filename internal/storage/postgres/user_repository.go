package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) Add(user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if user.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO users (username, password_hash, salt, role)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`, user.Username, user.PasswordHash, user.Salt, user.Role).Scan(&user.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.User{}, domain.ErrDuplicateUsername
			}
			return domain.User{}, fmt.Errorf("insert user: %w", err)
		}
		return user, nil
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, salt, role)
		VALUES ($1,$2,$3,$4,$5)
	`, user.ID, user.Username, user.PasswordHash, user.Salt, user.Role); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateUsername
		}
		return domain.User{}, fmt.Errorf("insert user with id: %w", err)
	}
	if err := syncIDSequence(ctx, r.db, "users"); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (r *userRepository) Get(id int64) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var user domain.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, salt, role
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}

func (r *userRepository) ListAll() ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, password_hash, salt, role
		FROM users
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &user.Role); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (r *userRepository) Update(user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET username = $1,
		    password_hash = $2,
		    salt = $3,
		    role = $4
		WHERE id = $5
	`, user.Username, user.PasswordHash, user.Salt, user.Role, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateUsername
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, fmt.Errorf("user rows affected: %w", err)
	}
	if affected == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	return user, nil
}

func (r *userRepository) Delete(id int64) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var user domain.User
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, username, password_hash, salt, role
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("delete user: %w", err)
	}

	return user, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
