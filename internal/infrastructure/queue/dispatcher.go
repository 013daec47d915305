// Package queue marks conversation messages read in the background so the
// conversation page does not wait on one API call per message.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-web/internal/api/metrics"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type receipt struct {
	ctx       context.Context
	peerID    string
	messageID int64
}

// Dispatcher routes read receipts to a fixed set of workers using consistent
// hashing on the peer id, so receipts of one conversation are sent in order.
type Dispatcher struct {
	workers  []chan receipt
	messages ports.MessagesAPI
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, messages ports.MessagesAPI, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan receipt, numWorkers),
		messages: messages,
		log:      log.With().Str("component", "read_receipts").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan receipt, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue schedules messageIDs to be marked read and returns how many were
// accepted. It never blocks: receipts beyond the worker buffer are dropped
// and the messages stay unread until the next visit. ctx supplies request
// scoped values only; its cancellation is ignored.
func (d *Dispatcher) Enqueue(ctx context.Context, peerID string, messageIDs ...int64) int {
	ctx = context.WithoutCancel(ctx)
	idx := d.shardIndex(peerID)
	ch := d.workers[idx]

	accepted := 0
	for _, id := range messageIDs {
		select {
		case ch <- receipt{ctx: ctx, peerID: peerID, messageID: id}:
			accepted++
		default:
			metrics.ReadReceiptsTotal.WithLabelValues("dropped").Inc()
			d.log.Warn().Str("peer_id", peerID).Int64("message_id", id).Msg("read receipt queue full")
		}
	}
	metrics.ReadReceiptQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(ch)))
	return accepted
}

// shardIndex maps a peer id deterministically to a worker index.
func (d *Dispatcher) shardIndex(peerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(peerID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan receipt) {
	defer d.wg.Done()
	depth := metrics.ReadReceiptQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-ch:
			depth.Set(float64(len(ch)))
			if err := d.messages.MarkRead(r.ctx, r.messageID); err != nil {
				metrics.ReadReceiptsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("peer_id", r.peerID).
					Int64("message_id", r.messageID).
					Int("worker_id", id).
					Msg("mark read failed")
				continue
			}
			metrics.ReadReceiptsTotal.WithLabelValues("ok").Inc()
		}
	}
}
