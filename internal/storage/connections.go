package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"

	"github.com/google/uuid"
)

// SaveConnection inserts or updates a provider connection. A connection
// without an ID gets one assigned.
func (s *SQLiteStorage) SaveConnection(ctx context.Context, conn *model.Connection) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(conn.Provider, "provider"); err != nil {
		return err
	}
	if err := validateString(conn.AccessToken, "access token"); err != nil {
		return err
	}

	if conn.ID == "" {
		conn.ID = uuid.NewString()
	}

	var expiry any
	if !conn.TokenExpiry.IsZero() {
		expiry = conn.TokenExpiry.UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO connections (id, provider, label, access_token, refresh_token, token_expiry)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_expiry = excluded.token_expiry,
			updated_at = CURRENT_TIMESTAMP`,
		conn.ID, conn.Provider, conn.Label, conn.AccessToken, conn.RefreshToken, expiry)
	if err != nil {
		return fmt.Errorf("failed to save connection %q: %w", conn.ID, err)
	}
	return nil
}

// GetConnection loads one connection by ID.
func (s *SQLiteStorage) GetConnection(ctx context.Context, id string) (*model.Connection, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, provider, label, access_token, refresh_token, token_expiry, created_at, updated_at
		FROM connections WHERE id = ?`, id)

	conn, err := scanConnection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("connection %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection %q: %w", id, err)
	}
	return conn, nil
}

// ListConnections returns connections, optionally restricted to one
// provider.
func (s *SQLiteStorage) ListConnections(ctx context.Context, provider string) ([]model.Connection, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, provider, label, access_token, refresh_token, token_expiry, created_at, updated_at
		FROM connections`
	var args []any
	if provider != "" {
		query += ` WHERE provider = ?`
		args = append(args, provider)
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var connections []model.Connection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		connections = append(connections, *conn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", err)
	}

	return connections, nil
}

// DeleteConnection removes one connection by ID.
func (s *SQLiteStorage) DeleteConnection(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM connections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete connection %q: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of connection %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("connection %q: %w", id, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConnection(row rowScanner) (*model.Connection, error) {
	var conn model.Connection
	var label, refreshToken sql.NullString
	var expiry, createdAt, updatedAt sql.NullTime

	err := row.Scan(&conn.ID, &conn.Provider, &label, &conn.AccessToken,
		&refreshToken, &expiry, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	conn.Label = label.String
	conn.RefreshToken = refreshToken.String
	if expiry.Valid {
		conn.TokenExpiry = expiry.Time
	}
	if createdAt.Valid {
		conn.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		conn.UpdatedAt = updatedAt.Time
	}

	return &conn, nil
}
