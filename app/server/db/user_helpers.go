package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	err := s.Conn.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.Conn.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, email, passwordHash string) (*User, error) {
	var user User
	err := s.Conn.GetContext(ctx, &user,
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING *",
		email, passwordHash)

	if err != nil {
		if IsNonUniqueErr(err) {
			return nil, fmt.Errorf("user already exists for email %s: %w", email, ErrDuplicate)
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return &user, nil
}

func (s *PostgresStore) ConfirmUser(ctx context.Context, email string) error {
	res, err := s.Conn.ExecContext(ctx,
		"UPDATE users SET confirmed = TRUE, updated_at = NOW() WHERE email = $1", email)
	if err != nil {
		return fmt.Errorf("error confirming user: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error confirming user: %v", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}

	return nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.Conn.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting user: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting user: %v", err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return nil
}

func IsNonUniqueErr(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

func isForeignKeyErr(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23503"
	}
	return false
}
