// Package bolt is the public facade of the tick time-series core: insert,
// range, aggregate, size and flush over a ring-buffered ingest path and a
// snapshot-published buffer manager.
//
// Grounded on original_source/src/database.cpp for the facade's
// operations and on the teacher repo's construction/wiring style for how
// a long-lived component owns its ring, pool and condition variable.
package bolt

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/rishav/bolt/internal/aggregate"
	"github.com/rishav/bolt/internal/manager"
	"github.com/rishav/bolt/internal/ring"
	"github.com/rishav/bolt/internal/telemetry"
	"github.com/rishav/bolt/internal/tick"
	"github.com/rishav/bolt/internal/workerpool"
)

// DB is an in-memory tick time-series core. Construct with New; release
// resources with Close.
type DB struct {
	ring    *ring.Ring
	pool    *workerpool.Pool
	manager *manager.Manager
	clock   *clock
	logger  *zap.Logger
	metrics *telemetry.Metrics

	mu      sync.Mutex
	cond    *sync.Cond
	stopped bool

	ingestFuture *workerpool.Future
}

// Option configures a DB at construction.
type Option func(*dbConfig)

type dbConfig struct {
	ringCapacity        uint64
	maxSealedBufferSize int
	maxSealed           int
	poolSize            int
	logger              *zap.Logger
	metrics             *telemetry.Metrics
}

// WithRingCapacity overrides ring.DefaultCapacity.
func WithRingCapacity(n uint64) Option {
	return func(c *dbConfig) { c.ringCapacity = n }
}

// WithMaxSealedBufferSize overrides manager.DefaultMaxSealedBufferSize.
func WithMaxSealedBufferSize(n int) Option {
	return func(c *dbConfig) { c.maxSealedBufferSize = n }
}

// WithMaxSealed overrides manager.DefaultMaxSealed.
func WithMaxSealed(n int) Option {
	return func(c *dbConfig) { c.maxSealed = n }
}

// WithPoolSize overrides the default worker pool sizing.
func WithPoolSize(n int) Option {
	return func(c *dbConfig) { c.poolSize = n }
}

// WithLogger overrides the zap.NewNop() default.
func WithLogger(logger *zap.Logger) Option {
	return func(c *dbConfig) { c.logger = logger }
}

// WithMetrics overrides the telemetry.NewNopMetrics() default.
func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(c *dbConfig) { c.metrics = metrics }
}

// New constructs a database with its ring, worker pool and buffer
// manager, and starts the ingest worker.
func New(opts ...Option) *DB {
	cfg := dbConfig{
		ringCapacity:        ring.DefaultCapacity,
		maxSealedBufferSize: manager.DefaultMaxSealedBufferSize,
		maxSealed:           manager.DefaultMaxSealed,
		logger:              zap.NewNop(),
		metrics:             telemetry.NewNopMetrics(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := &DB{
		ring:    ring.New(cfg.ringCapacity),
		logger:  cfg.logger,
		metrics: cfg.metrics,
	}
	db.cond = sync.NewCond(&db.mu)

	if cfg.poolSize > 0 {
		db.pool = workerpool.NewSize(cfg.poolSize)
	} else {
		db.pool = workerpool.New()
	}

	db.manager = manager.New(db.pool,
		manager.WithMaxSealedBufferSize(cfg.maxSealedBufferSize),
		manager.WithMaxSealed(cfg.maxSealed),
		manager.WithLogger(db.logger),
		manager.WithMetrics(db.metrics),
	)
	db.clock = newClock()

	db.ingestFuture = db.pool.Assign(db.ingestLoop)
	return db
}

// Now returns the current time as nanoseconds since the Unix epoch, read
// from a periodically-refreshed cached clock rather than a syscall per
// call. Callers are expected to stamp their own Tick.Timestamp; this is
// offered for convenience.
func (db *DB) Now() uint64 {
	return db.clock.now()
}

// Insert pushes a single tick into the ring and wakes the ingest worker.
// Non-blocking in the amortized sense: on sustained ring pressure the
// tick is dropped after a bounded number of retries (see
// internal/telemetry's bolt_ring_drops_total).
func (db *DB) Insert(t tick.Tick) {
	db.insertOne(t)
	db.signal()
}

// InsertBatch inserts every tick in ticks, waking the ingest worker once
// at the end.
func (db *DB) InsertBatch(ticks []tick.Tick) {
	for _, t := range ticks {
		db.insertOne(t)
	}
	db.signal()
}

// maxInsertSpins bounds how long Insert retries against a full ring
// before giving up and counting the tick as dropped.
const maxInsertSpins = 1 << 16

func (db *DB) insertOne(t tick.Tick) {
	for i := 0; i < maxInsertSpins; i++ {
		if db.ring.Insert(t) {
			db.metrics.TicksIngested.Inc()
			return
		}
		runtime.Gosched()
	}
	db.metrics.RingDrops.Inc()
	db.logger.Warn("ring full, dropping tick", zap.Uint64("timestamp", t.Timestamp))
}

func (db *DB) signal() {
	db.mu.Lock()
	db.cond.Signal()
	db.mu.Unlock()
}

// ingestLoop is the single task assigned to the pool at construction: it
// waits for the ring to become non-empty (or for stop), drains it, and
// forwards each tick to the buffer manager. Only this goroutine ever
// calls manager.Insert, which is what lets readers scan a published
// snapshot's active buffer without a lock.
func (db *DB) ingestLoop() {
	for {
		db.mu.Lock()
		for db.ring.IsEmpty() && !db.stopped {
			db.cond.Wait()
		}
		stopping := db.stopped
		db.mu.Unlock()

		for {
			t, ok := db.ring.Read()
			if !ok {
				break
			}
			db.manager.Insert(t)
		}

		if stopping {
			return
		}
	}
}

// GetRange returns every tick in [start, end] (inclusive), sorted
// ascending by timestamp. An optional filter restricts which ticks are
// included; at most one filter may be passed. Returns an empty sequence
// if start > end.
func (db *DB) GetRange(start, end uint64, filter ...tick.Filter) []tick.Tick {
	if start > end {
		return nil
	}
	snap := db.manager.State()
	c := collect(snap, start, end, firstFilter(filter))
	return merge(c)
}

// Aggregate reduces every tick in [start, end] (inclusive) matching the
// optional filter into summary statistics.
func (db *DB) Aggregate(start, end uint64, filter ...tick.Filter) aggregate.Result {
	if start > end {
		return aggregate.Result{}
	}
	snap := db.manager.State()
	merged := merge(collect(snap, start, end, firstFilter(filter)))

	records := make([]aggregate.PriceVolume, 0, len(merged))
	for _, t := range merged {
		records = append(records, aggregate.PriceVolume{Price: t.Price, Volume: t.Volume})
	}
	return aggregate.Reduce(records)
}

func firstFilter(filters []tick.Filter) tick.Filter {
	if len(filters) == 0 {
		return nil
	}
	return filters[0]
}

// Size returns an advisory total record count: |sealed chain| ×
// MAX_SEALED_BUFFER_SIZE (only exact in steady state — see §9's open
// question on size() arithmetic) plus the active buffer's count.
func (db *DB) Size() int {
	snap := db.manager.State()
	return len(snap.Sealed)*db.manager.MaxSealedBufferSize() + snap.Active.Len()
}

// Flush blocks until the ring is drained, stops the ingest worker, and
// restarts the worker pool so any queued sealing tasks complete before
// returning. The database accepts new inserts again once Flush returns.
// Flush is idempotent: Flush(); Flush() observes the same state as one
// call.
func (db *DB) Flush() {
	db.drainRing()

	db.mu.Lock()
	db.stopped = true
	db.mu.Unlock()
	db.cond.Broadcast()
	_ = db.ingestFuture.Wait()

	db.pool.Shutdown()
	db.pool.Restart()

	db.mu.Lock()
	db.stopped = false
	db.mu.Unlock()
	db.ingestFuture = db.pool.Assign(db.ingestLoop)
}

func (db *DB) drainRing() {
	for !db.ring.IsEmpty() {
		runtime.Gosched()
	}
}

// Close stops the ingest worker and shuts down the worker pool and
// cached clock. The database must not be used after Close.
func (db *DB) Close() {
	db.mu.Lock()
	db.stopped = true
	db.mu.Unlock()
	db.cond.Broadcast()
	_ = db.ingestFuture.Wait()

	db.pool.Shutdown()
	db.clock.stop()
}
