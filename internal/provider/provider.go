// Package provider wires the concrete data providers into the catalog
// registry and builds the API client for a stored connection.
package provider

import (
	"fmt"

	"github.com/datadonation/dds/internal/model"
	"github.com/datadonation/dds/internal/provider/fitbit"
	"github.com/datadonation/dds/internal/provider/github"

	"github.com/spf13/viper"
)

// RegisterAll populates the catalog registry with every known provider.
// It runs once at startup, before any catalog build or resolution.
func RegisterAll() error {
	if err := fitbit.Register(); err != nil {
		return fmt.Errorf("failed to register fitbit provider: %w", err)
	}
	if err := github.Register(); err != nil {
		return fmt.Errorf("failed to register github provider: %w", err)
	}
	return nil
}

// SourceFor builds the live API client for a connection, reading application
// credentials from configuration.
func SourceFor(conn *model.Connection) (model.Source, error) {
	switch conn.Provider {
	case fitbit.ProviderType:
		return fitbit.NewClient(fitbit.Config{
			ClientID:     viper.GetString("fitbit.client_id"),
			ClientSecret: viper.GetString("fitbit.client_secret"),
		}, conn)
	case github.ProviderType:
		return github.NewClient(conn)
	default:
		return nil, fmt.Errorf("no client for provider %q", conn.Provider)
	}
}
