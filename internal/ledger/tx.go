package ledger

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "kycshare/pkg/domain-errors"
	platformsync "kycshare/pkg/platform/sync"
)

// Shard contention metrics for monitoring lock behavior
var (
	shardLockWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kycshare_ledger_shard_lock_wait_seconds",
		Help:    "Time spent waiting to acquire a customer shard lock",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
	shardLockAcquisitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kycshare_ledger_shard_lock_acquisitions_total",
		Help: "Total number of customer shard lock acquisitions",
	})
)

// Tx provides a transactional boundary for ledger mutations. The key selects
// the exclusive scope: a customer id linearizes all operations on that
// customer's aggregate, the empty key serializes registry-level mutations.
// Operations on disjoint customers may run in parallel.
type Tx interface {
	RunInTx(ctx context.Context, key string, fn func(store Store) error) error
}

// defaultTxTimeout is the maximum duration for a ledger transaction.
const defaultTxTimeout = 5 * time.Second

type shardedTx struct {
	mu      *platformsync.ShardedMutex
	store   Store
	timeout time.Duration
}

// NewShardedTx wraps a store with per-key sharded locking. In-memory stores
// get their transaction scope from the coarse shard lock; a database-backed
// implementation would wrap a real transaction instead.
func NewShardedTx(store Store) Tx {
	return &shardedTx{
		mu:    platformsync.NewShardedMutex(),
		store: store,
	}
}

func (t *shardedTx) RunInTx(ctx context.Context, key string, fn func(store Store) error) error {
	// Check if context is already cancelled
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	// Apply timeout if not already set
	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Record lock acquisition timing for contention monitoring
	lockStart := time.Now()
	t.mu.Lock(key)
	shardLockWaitDuration.Observe(time.Since(lockStart).Seconds())
	shardLockAcquisitions.Inc()
	defer t.mu.Unlock(key)

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(t.store)
}
