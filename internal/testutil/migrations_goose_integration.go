//go:build integration

package testutil

import (
	"context"
	"time"

	pgstore "github.com/Gunvolt24/order_lookup/internal/store/postgres"
)

// ApplyMigrationsGoose применяет встроенные миграции из migrations/ к свежему контейнеру.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := pgstore.Migrate(ctx, dsn)
	return err
}
