package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hugh/otp-auth/internal/database"
	"github.com/hugh/otp-auth/pkg/config"
)

// Open connects the user store selected by cfg.Driver and prepares its
// schema or indexes. The returned close func releases the connection.
func Open(ctx context.Context, cfg *config.DatabaseConfig, log *slog.Logger) (Users, func(context.Context) error, error) {
	if cfg.Driver == "mongodb" {
		client, err := database.ConnectMongo(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}

		users := NewMongoUsers(client.Database(cfg.Name))
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("creating indexes: %w", err)
		}
		return users, client.Disconnect, nil
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("getting underlying db: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}

	closeFn := func(context.Context) error { return sqlDB.Close() }
	return NewGormUsers(db), closeFn, nil
}
