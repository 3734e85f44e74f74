package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/bnbmargins/bnbmargins/internal/common"
	"github.com/bnbmargins/bnbmargins/internal/config"
	"github.com/bnbmargins/bnbmargins/internal/service"
	"github.com/bnbmargins/bnbmargins/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/bnb/bnb.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// currentOwner resolves the owner account every command operates on.
func currentOwner() (string, error) {
	owner := viper.GetString("owner")
	if owner == "" {
		return "", common.NewUserError(
			"no owner configured: set --owner, BNB_OWNER, or owner in the config file",
			common.ErrMissingConfig)
	}
	return owner, nil
}

// parseDateFlag parses an ISO date flag value. An empty value yields nil.
func parseDateFlag(value, flag string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", flag, value)
	}
	return &d, nil
}

// requireDateFlag parses a mandatory ISO date flag value.
func requireDateFlag(value, flag string) (time.Time, error) {
	d, err := parseDateFlag(value, flag)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return time.Time{}, fmt.Errorf("--%s is required", flag)
	}
	return *d, nil
}
