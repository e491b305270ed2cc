package reconcile

import (
	"errors"
	"time"

	"github.com/FelixBrandt/ShopFox/internal/pkg/env"
)

const (
	// LockKey is the cluster-wide mutex key; one per job type.
	LockKey = "lock:reconcile:payments"

	// statsKey is the Redis hash holding cumulative run counters.
	statsKey = "reconcile_stats"
)

// ErrAlreadyReconciled signals that the guarded payment update matched zero
// rows: a concurrent actor advanced the payment after our scan. The item is
// counted as skipped, not failed.
var ErrAlreadyReconciled = errors.New("payment already reconciled by another actor")

// Result aggregates one reconciliation run.
// Processed == Reconciled + Failed + Skipped always holds.
type Result struct {
	Processed  int `json:"processed"`
	Reconciled int `json:"reconciled"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// Options carries the externally supplied tunables of a run.
type Options struct {
	BatchSize  int
	StaleAfter time.Duration
	LockTTL    time.Duration
	TxTimeout  time.Duration
}

// OptionsFromEnv loads the run tunables from the environment.
func OptionsFromEnv() Options {
	return Options{
		BatchSize:  env.GetEnvInt("RECONCILE_BATCH_SIZE", 50),
		StaleAfter: time.Duration(env.GetEnvInt("RECONCILE_STALE_AFTER_MINUTES", 30)) * time.Minute,
		LockTTL:    time.Duration(env.GetEnvInt("RECONCILE_LOCK_TTL_SECONDS", 300)) * time.Second,
		TxTimeout:  time.Duration(env.GetEnvInt("RECONCILE_TX_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}
