package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
	"github.com/datadonation/dds/internal/service"

	"github.com/google/uuid"
)

// SaveCustomVariable inserts or updates a stored custom-variable spec. The
// spec document itself is kept as JSON; its shape is validated before
// storage.
func (s *SQLiteStorage) SaveCustomVariable(ctx context.Context, cv *model.CustomVariable) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := cv.Validate(); err != nil {
		return err
	}

	spec, err := cv.Encode()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO custom_variables (id, provider, category, variable_name, spec)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(provider, variable_name) DO UPDATE SET
			category = excluded.category,
			spec = excluded.spec,
			updated_at = CURRENT_TIMESTAMP`,
		uuid.NewString(), cv.Provider, cv.DataCategory, cv.VariableName, string(spec))
	if err != nil {
		return fmt.Errorf("failed to save custom variable %q: %w", cv.VariableName, err)
	}
	return nil
}

// GetCustomVariable loads one stored spec by provider and variable name.
func (s *SQLiteStorage) GetCustomVariable(ctx context.Context, provider, name string) (*model.CustomVariable, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var spec string
	err := s.db.QueryRowContext(ctx, `
		SELECT spec FROM custom_variables
		WHERE provider = ? AND variable_name = ?`, provider, name).Scan(&spec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("custom variable %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom variable %q: %w", name, err)
	}

	cv, err := model.DecodeCustomVariable([]byte(spec))
	if err != nil {
		return nil, err
	}
	return &cv, nil
}

// ListCustomVariables returns stored specs matching the filter.
func (s *SQLiteStorage) ListCustomVariables(ctx context.Context, filter service.VariableFilter) ([]model.CustomVariable, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT spec FROM custom_variables WHERE 1=1`
	var args []any
	if filter.Provider != "" {
		query += ` AND provider = ?`
		args = append(args, filter.Provider)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.EnabledOnly {
		query += ` AND enabled = 1`
	}
	query += ` ORDER BY provider, variable_name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom variables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var variables []model.CustomVariable
	for rows.Next() {
		var spec string
		if err := rows.Scan(&spec); err != nil {
			return nil, fmt.Errorf("failed to scan custom variable: %w", err)
		}
		cv, err := model.DecodeCustomVariable([]byte(spec))
		if err != nil {
			return nil, err
		}
		variables = append(variables, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom variables: %w", err)
	}

	return variables, nil
}

// SetCustomVariableEnabled flips the enabled flag of a stored spec.
func (s *SQLiteStorage) SetCustomVariableEnabled(ctx context.Context, provider, name string, enabled bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE custom_variables SET enabled = ?, updated_at = CURRENT_TIMESTAMP
		WHERE provider = ? AND variable_name = ?`, enabled, provider, name)
	if err != nil {
		return fmt.Errorf("failed to update custom variable %q: %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("custom variable %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// DeleteCustomVariable removes a stored spec.
func (s *SQLiteStorage) DeleteCustomVariable(ctx context.Context, provider, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM custom_variables WHERE provider = ? AND variable_name = ?`, provider, name)
	if err != nil {
		return fmt.Errorf("failed to delete custom variable %q: %w", name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("custom variable %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// SetBuiltinEnabled enables or disables a built-in variable by its qualified
// name.
func (s *SQLiteStorage) SetBuiltinEnabled(ctx context.Context, qualifiedName string, enabled bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(qualifiedName, "qualifiedName"); err != nil {
		return err
	}

	if !enabled {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM enabled_builtins WHERE qualified_name = ?`, qualifiedName)
		if err != nil {
			return fmt.Errorf("failed to disable builtin %q: %w", qualifiedName, err)
		}
		return nil
	}

	// Qualified names are dds.<provider>.builtin.<category>.<name>; the
	// provider column is denormalized for listing.
	provider := providerOf(qualifiedName)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enabled_builtins (qualified_name, provider) VALUES (?, ?)
		ON CONFLICT(qualified_name) DO NOTHING`, qualifiedName, provider)
	if err != nil {
		return fmt.Errorf("failed to enable builtin %q: %w", qualifiedName, err)
	}
	return nil
}

// ListEnabledBuiltins returns the qualified names of enabled built-ins,
// optionally restricted to one provider.
func (s *SQLiteStorage) ListEnabledBuiltins(ctx context.Context, provider string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT qualified_name FROM enabled_builtins`
	var args []any
	if provider != "" {
		query += ` WHERE provider = ?`
		args = append(args, provider)
	}
	query += ` ORDER BY qualified_name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled builtins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var qn string
		if err := rows.Scan(&qn); err != nil {
			return nil, fmt.Errorf("failed to scan enabled builtin: %w", err)
		}
		names = append(names, qn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate enabled builtins: %w", err)
	}

	return names, nil
}

func providerOf(qualifiedName string) string {
	// dds.<provider>....
	start := -1
	for i, r := range qualifiedName {
		if r != '.' {
			continue
		}
		if start < 0 {
			start = i + 1
			continue
		}
		return qualifiedName[start:i]
	}
	return ""
}
