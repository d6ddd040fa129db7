package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mini-project-manager/tracker/internal/api/metrics"
	"github.com/mini-project-manager/tracker/internal/core/domain"
	"github.com/mini-project-manager/tracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Dispatcher routes task events to a fixed set of workers using consistent
// hashing on the task id, so the events of one task are recorded in the
// order they were published.
type Dispatcher struct {
	workers  []chan domain.TaskEvent
	recorder ports.ActivityRecorder
	log      zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, recorder ports.ActivityRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.TaskEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.TaskEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and exit
// once Close is called.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Publish queues event for the worker responsible for its task. It never
// blocks the caller: when the worker channel is full or the dispatcher is
// closed the event is dropped and logged.
func (d *Dispatcher) Publish(_ context.Context, event domain.TaskEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().Str("task_id", event.TaskID).Msg("dispatcher closed, task event dropped")
		return
	}

	idx := d.shardIndex(event.TaskID)
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().Str("task_id", event.TaskID).Int("worker_id", idx).Msg("activity queue full, task event dropped")
	}
}

// Close stops accepting events and waits until queued events are recorded
// or ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a task id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taskID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taskID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.TaskEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for event := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		err := d.recorder.Record(ctx, event)
		cancel()

		result := "ok"
		if err != nil {
			result = "error"
			d.log.Error().Err(err).
				Str("task_id", event.TaskID).
				Str("type", string(event.Type)).
				Int("worker_id", id).
				Msg("task event recording failed")
		}
		metrics.ActivityRecordDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}
}

var _ ports.ActivityPublisher = (*Dispatcher)(nil)
