package main

import (
	"fmt"

	"github.com/datadonation/dds/internal/config"
	"github.com/datadonation/dds/internal/storage"
)

// openStorage opens the configured SQLite database.
func openStorage() (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}
