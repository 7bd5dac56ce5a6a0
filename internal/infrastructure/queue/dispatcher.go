package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
	"github.com/ferreteria-epa/backoffice/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher persists login attempts off the request path. Attempts are
// sharded by email so records for one account are written in order.
type AuditDispatcher struct {
	workers []chan domain.LoginAttempt
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.LoginAttempt, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LoginAttempt, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and stop
// when ctx is cancelled; Wait blocks until they have.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

func (d *AuditDispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues attempt without blocking. When the shard is full the
// attempt is dropped and a warning is logged.
func (d *AuditDispatcher) Record(attempt domain.LoginAttempt) {
	select {
	case d.workers[d.shardIndex(attempt.Email)] <- attempt:
	default:
		d.log.Warn().Str("outcome", string(attempt.Outcome)).Msg("audit queue full, login attempt dropped")
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LoginAttempt) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case attempt := <-ch:
			d.persist(ctx, id, attempt)
		}
	}
}

// drain writes whatever is still buffered using a fresh context, since the
// worker context is already cancelled.
func (d *AuditDispatcher) drain(id int, ch <-chan domain.LoginAttempt) {
	for {
		select {
		case attempt := <-ch:
			d.persist(context.Background(), id, attempt)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) persist(ctx context.Context, id int, attempt domain.LoginAttempt) {
	if err := d.repo.InsertAttempt(ctx, &attempt); err != nil {
		d.log.Error().Err(err).
			Str("outcome", string(attempt.Outcome)).
			Int("worker_id", id).
			Msg("login attempt persistence failed")
	}
}
