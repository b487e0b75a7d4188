package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrkit/leave-system/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 15 * time.Second
)

// ErrQueueFull is returned when a worker channel has no capacity left.
var ErrQueueFull = errors.New("mail queue full")

// Sender delivers a single message synchronously.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type message struct {
	to      string
	subject string
	body    string
}

// Dispatcher routes outbound mail to a fixed set of workers using consistent
// hashing on the recipient address, so messages to the same recipient are
// delivered in the order they were enqueued. It satisfies ports.Notifier:
// Send only enqueues, and delivery failures are logged by the workers rather
// than surfaced to the producing request.
type Dispatcher struct {
	workers []chan message
	sender  Sender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan message, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan message, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Send enqueues a message without blocking. ErrQueueFull is returned when the
// responsible worker's buffer is exhausted; the message is then dropped and
// the caller decides whether that matters.
func (d *Dispatcher) Send(_ context.Context, to, subject, body string) error {
	idx := d.shardIndex(to)
	select {
	case d.workers[idx] <- message{to: to, subject: subject, body: body}:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		return ErrQueueFull
	}
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan message) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.MailQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			// The producing request is long gone; deliveries get their own
			// deadline derived from the dispatcher's lifecycle context.
			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := d.sender.Send(sendCtx, msg.to, msg.subject, msg.body)
			cancel()

			if err != nil {
				metrics.MailSendsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("to", msg.to).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			metrics.MailSendsTotal.WithLabelValues("ok").Inc()
			d.log.Debug().Str("to", msg.to).Str("subject", msg.subject).Msg("mail delivered")
		}
	}
}
