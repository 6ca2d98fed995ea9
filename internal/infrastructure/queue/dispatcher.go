package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/abelab/crms/internal/api/metrics"
	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/ports"
	"github.com/abelab/crms/internal/core/service"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher fans reminders out to a fixed set of workers. Reminders for the
// same reservation always land on the same worker.
type Dispatcher struct {
	workers []chan domain.UpcomingReservation
	service ports.ReminderService
	log     zerolog.Logger
	wg      sync.WaitGroup
	ctx     context.Context
}

// ErrDispatcherStopped is returned by Enqueue once the context passed to
// Start is done.
var ErrDispatcherStopped = errors.New("reminder dispatcher stopped")

// NewDispatcher creates a Dispatcher with numWorkers workers, or
// defaultWorkers when numWorkers <= 0.
func NewDispatcher(numWorkers int, svc ports.ReminderService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.UpcomingReservation, numWorkers),
		service: svc,
		log:     log,
		ctx:     context.Background(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.UpcomingReservation, channelBuffer)
	}
	return d
}

// Start launches the workers. They exit when ctx is cancelled or after Close
// once their channel is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	d.ctx = ctx
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a reminder to the worker that owns its reservation. It blocks
// while that worker's buffer is full and gives up with ErrDispatcherStopped
// once the Start context is done.
func (d *Dispatcher) Enqueue(rem domain.UpcomingReservation) error {
	if err := d.ctx.Err(); err != nil {
		return ErrDispatcherStopped
	}
	idx := d.shardIndex(rem.Reservation.ID)
	select {
	case d.workers[idx] <- rem:
	case <-d.ctx.Done():
		return ErrDispatcherStopped
	}
	metrics.RemindersQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// EnqueueBatch enqueues rems in order and returns how many were accepted.
func (d *Dispatcher) EnqueueBatch(rems []domain.UpcomingReservation) (int, error) {
	for i, r := range rems {
		if err := d.Enqueue(r); err != nil {
			return i, err
		}
	}
	return len(rems), nil
}

// Close stops accepting reminders and waits for the workers to finish.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

func (d *Dispatcher) shardIndex(reservationID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(reservationID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.UpcomingReservation) {
	defer d.wg.Done()
	depth := metrics.RemindersQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case rem, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))

			err := d.service.Send(ctx, rem)
			switch {
			case err == nil:
				metrics.RemindersTotal.WithLabelValues("sent").Inc()
			case errors.Is(err, service.ErrReminderSkipped):
				metrics.RemindersTotal.WithLabelValues("skipped").Inc()
			default:
				metrics.RemindersTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("reservation_id", rem.Reservation.ID).
					Int("worker_id", id).
					Msg("reminder delivery failed")
			}
		}
	}
}
