package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/api/metrics"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes reachability checks to a fixed set of workers using
// consistent hashing on the site id, guaranteeing per-site ordering.
type Dispatcher struct {
	workers []chan ports.VerifyInput
	service ports.VerifyService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.VerifyService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.VerifyInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.VerifyInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a check to the worker responsible for its site id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(in ports.VerifyInput) {
	idx := d.shardIndex(in.SiteID)
	d.workers[idx] <- in
	metrics.VerifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a site id deterministically to a worker index.
func (d *Dispatcher) shardIndex(siteID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(siteID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.VerifyInput) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			metrics.VerifyQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Verify(ctx, in); err != nil {
				d.log.Error().Err(err).
					Str("site_id", in.SiteID).
					Int("worker_id", id).
					Msg("site verification failed")
			}
		}
	}
}
