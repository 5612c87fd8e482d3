// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
)

// VariableFilter defines filtering options for stored custom-variable
// queries.
type VariableFilter struct {
	Provider    string
	Category    string
	EnabledOnly bool
}

// Storage defines the contract for our persistence layer. It holds variable
// declarations and provider connections, never resolved output values.
type Storage interface {
	// Custom variable operations
	SaveCustomVariable(ctx context.Context, cv *model.CustomVariable) error
	GetCustomVariable(ctx context.Context, provider, name string) (*model.CustomVariable, error)
	ListCustomVariables(ctx context.Context, filter VariableFilter) ([]model.CustomVariable, error)
	SetCustomVariableEnabled(ctx context.Context, provider, name string, enabled bool) error
	DeleteCustomVariable(ctx context.Context, provider, name string) error

	// Built-in variable selections (by qualified name)
	SetBuiltinEnabled(ctx context.Context, qualifiedName string, enabled bool) error
	ListEnabledBuiltins(ctx context.Context, provider string) ([]string, error)

	// Provider connection operations
	SaveConnection(ctx context.Context, conn *model.Connection) error
	GetConnection(ctx context.Context, id string) (*model.Connection, error)
	ListConnections(ctx context.Context, provider string) ([]model.Connection, error)
	DeleteConnection(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for provider API calls.
type RetryOptions = common.RetryOptions
