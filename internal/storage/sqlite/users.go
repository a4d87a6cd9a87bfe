package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
)

// CreateUser persists a new user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, couple_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Name, user.Email, user.PasswordHash,
		nullableID(user.CoupleID), user.CreatedAt.Unix(), user.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// SaveUser updates an existing user.
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, password_hash = ?, couple_id = ?, updated_at = ?
		 WHERE id = ?`,
		user.Name, user.Email, user.PasswordHash,
		nullableID(user.CoupleID), user.UpdatedAt.Unix(), user.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser removes a user by ID.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// FindUserByID retrieves a user by ID, or (nil, nil) if absent.
func (s *Store) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, couple_id, created_at, updated_at
		 FROM users WHERE id = ?`, id.String()))
}

// FindUserByEmail retrieves a user by email, or (nil, nil) if absent.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, couple_id, created_at, updated_at
		 FROM users WHERE email = ?`, email))
}

// FindUsersByCoupleID retrieves the members of a couple.
func (s *Store) FindUsersByCoupleID(ctx context.Context, coupleID uuid.UUID) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, password_hash, couple_id, created_at, updated_at
		 FROM users WHERE couple_id = ?`, coupleID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanUser(row rowScanner) (*models.User, error) {
	var (
		rawID                string
		coupleID             sql.NullString
		createdAt, updatedAt int64
		user                 models.User
	)
	err := row.Scan(&rawID, &user.Name, &user.Email, &user.PasswordHash, &coupleID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if user.ID, err = parseID(rawID); err != nil {
		return nil, err
	}
	if coupleID.Valid {
		if user.CoupleID, err = parseID(coupleID.String); err != nil {
			return nil, err
		}
	}
	user.CreatedAt = unixTime(createdAt)
	user.UpdatedAt = unixTime(updatedAt)
	return &user, nil
}

// nullableID maps uuid.Nil to SQL NULL.
func nullableID(id uuid.UUID) sql.NullString {
	if id == uuid.Nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}
