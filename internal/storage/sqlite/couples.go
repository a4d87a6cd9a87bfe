package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
)

// CreateCouple persists a new couple and its membership rows.
func (s *Store) CreateCouple(ctx context.Context, couple *models.Couple) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO couples (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		couple.ID.String(), couple.Name, couple.CreatedAt.Unix(), couple.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert couple: %w", err)
	}

	if err := insertMembers(ctx, tx, couple); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveCouple updates an existing couple, replacing its membership rows.
func (s *Store) SaveCouple(ctx context.Context, couple *models.Couple) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE couples SET name = ?, updated_at = ? WHERE id = ?",
		couple.Name, couple.UpdatedAt.Unix(), couple.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update couple: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM couple_members WHERE couple_id = ?", couple.ID.String())
	if err != nil {
		return fmt.Errorf("failed to clear couple members: %w", err)
	}

	if err := insertMembers(ctx, tx, couple); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteCouple removes a couple by ID; membership rows cascade.
func (s *Store) DeleteCouple(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM couples WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete couple: %w", err)
	}
	return nil
}

// FindCoupleByID retrieves a couple by ID, or (nil, nil) if absent.
func (s *Store) FindCoupleByID(ctx context.Context, id uuid.UUID) (*models.Couple, error) {
	return s.scanCouple(ctx, s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM couples WHERE id = ?", id.String()))
}

// FindCoupleByName retrieves a couple by its unique name, or (nil, nil).
func (s *Store) FindCoupleByName(ctx context.Context, name string) (*models.Couple, error) {
	return s.scanCouple(ctx, s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM couples WHERE name = ?", name))
}

// FindCoupleByMemberID retrieves the couple a user belongs to, or (nil, nil).
func (s *Store) FindCoupleByMemberID(ctx context.Context, memberID uuid.UUID) (*models.Couple, error) {
	return s.scanCouple(ctx, s.db.QueryRowContext(ctx,
		`SELECT c.id, c.name, c.created_at, c.updated_at
		 FROM couples c
		 JOIN couple_members m ON m.couple_id = c.id
		 WHERE m.user_id = ?`, memberID.String()))
}

func insertMembers(ctx context.Context, tx *sql.Tx, couple *models.Couple) error {
	for i, memberID := range couple.Members {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO couple_members (couple_id, user_id, position) VALUES (?, ?, ?)",
			couple.ID.String(), memberID.String(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert couple member: %w", err)
		}
	}
	return nil
}

func (s *Store) scanCouple(ctx context.Context, row rowScanner) (*models.Couple, error) {
	var (
		rawID                string
		createdAt, updatedAt int64
		couple               models.Couple
	)
	err := row.Scan(&rawID, &couple.Name, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan couple: %w", err)
	}

	if couple.ID, err = parseID(rawID); err != nil {
		return nil, err
	}
	couple.CreatedAt = unixTime(createdAt)
	couple.UpdatedAt = unixTime(updatedAt)

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM couple_members WHERE couple_id = ? ORDER BY position",
		couple.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query couple members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rawMemberID string
		if err := rows.Scan(&rawMemberID); err != nil {
			return nil, fmt.Errorf("failed to scan couple member: %w", err)
		}
		memberID, err := parseID(rawMemberID)
		if err != nil {
			return nil, err
		}
		couple.Members = append(couple.Members, memberID)
	}
	return &couple, rows.Err()
}
