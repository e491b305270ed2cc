package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2/log"

	"github.com/FelixBrandt/ShopFox/internal/pkg/cache"
	"github.com/FelixBrandt/ShopFox/internal/pkg/database"
	"github.com/FelixBrandt/ShopFox/internal/pkg/env"
	"github.com/FelixBrandt/ShopFox/internal/pkg/gateway"
	"github.com/FelixBrandt/ShopFox/internal/pkg/reconcile"
)

// One invocation is one reconciliation run; the cluster scheduler (cron)
// decides when runs happen.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	opts := reconcile.OptionsFromEnv()
	client := cache.GetClient()

	service := reconcile.NewService(
		reconcile.NewRepository(database.GetDB()),
		gateway.NewClientFromEnv(),
		reconcile.NewRedisLock(client, reconcile.LockKey, opts.LockTTL),
		reconcile.NewRedisPublisher(client),
		opts,
	)

	result := service.Run(context.Background())
	log.Infof("Reconciliation run done: processed=%d reconciled=%d failed=%d skipped=%d",
		result.Processed, result.Reconciled, result.Failed, result.Skipped)

	// Nonzero exit lets the scheduler's monitoring pick up runs with failures.
	if result.Failed > 0 {
		os.Exit(1)
	}
}
