package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ViewCounter persists article view increments.
type ViewCounter interface {
	IncrementViews(ctx context.Context, articleID string, n int64) error
}

// Dispatcher records article views off the request path. Views are routed to
// a fixed set of workers by hashing the article id, so one hot article never
// occupies more than one worker.
type Dispatcher struct {
	workers []chan string
	counter ViewCounter
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, counter ViewCounter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		counter: counter,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// views still queued at that point are dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record queues one view of articleID. It never blocks: when the worker's
// queue is full the view is dropped.
func (d *Dispatcher) Record(articleID string) {
	idx := d.shardIndex(articleID)
	select {
	case d.workers[idx] <- articleID:
		metrics.ViewQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ArticleViewsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("article_id", articleID).Int("worker_id", idx).Msg("view queue full, dropping view")
	}
}

// shardIndex maps an article id deterministically to a worker index.
func (d *Dispatcher) shardIndex(articleID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(articleID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case articleID := <-ch:
			metrics.ViewQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.counter.IncrementViews(ctx, articleID, 1); err != nil {
				metrics.ArticleViewsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("article_id", articleID).
					Int("worker_id", id).
					Msg("view increment failed")
				continue
			}
			metrics.ArticleViewsTotal.WithLabelValues("recorded").Inc()
		}
	}
}
