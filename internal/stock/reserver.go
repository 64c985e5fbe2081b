// Package stock issues best-effort reservation and release calls against
// the backend stock ledger and reconciles the quantities the UI displays.
//
// Calls are fire-and-forget: the cart mutation that triggered them has
// already been applied locally by the time a response arrives. Responses
// for the same item can resolve out of order, so every request carries a
// per-item sequence number and only the latest one is allowed to touch
// the displayed quantity; stale responses are dropped.
package stock

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/SHAIK-07/sunmax/internal/backend"
)

const (
	EventStockUpdated = "stock.updated"
	stockEventChannel = "stock:events"
)

// Backend failure messages encode the remaining quantity as
// "Only N units available".
var availableHint = regexp.MustCompile(`Only (\d+) units available`)

type stockClient interface {
	ReserveStock(ctx context.Context, itemCode string, qty int) (*backend.StockResult, error)
	ReleaseStock(ctx context.Context, itemCode string, qty int) (*backend.StockResult, error)
}

// StockEvent is published on the Redis event channel whenever a
// reconciled quantity lands, so every mounted view converges on the same
// number.
type StockEvent struct {
	Event    string `json:"event"`
	ItemCode string `json:"item_code"`
	Quantity int    `json:"quantity"`
}

type Reserver struct {
	client  stockClient
	rdb     *redis.Client
	log     *logrus.Entry
	timeout time.Duration

	mu      sync.Mutex
	seq     map[string]uint64
	display map[string]int

	wg sync.WaitGroup
}

// NewReserver builds a reserver over the backend client. rdb may be nil;
// reconciled quantities are then kept in-process only.
func NewReserver(client stockClient, rdb *redis.Client, log *logrus.Logger) *Reserver {
	return &Reserver{
		client:  client,
		rdb:     rdb,
		log:     log.WithField("component", "stock"),
		timeout: 10 * time.Second,
		seq:     make(map[string]uint64),
		display: make(map[string]int),
	}
}

// Reserve asynchronously places a hold on qty units. The caller's local
// state is already updated; nothing is rolled back on failure.
func (r *Reserver) Reserve(itemCode string, qty int) {
	r.dispatch(itemCode, qty, r.client.ReserveStock)
}

// Release asynchronously returns qty units to the ledger.
func (r *Reserver) Release(itemCode string, qty int) {
	r.dispatch(itemCode, qty, r.client.ReleaseStock)
}

type stockCall func(ctx context.Context, itemCode string, qty int) (*backend.StockResult, error)

func (r *Reserver) dispatch(itemCode string, qty int, call stockCall) {
	r.mu.Lock()
	r.seq[itemCode]++
	mySeq := r.seq[itemCode]
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		result, err := call(ctx, itemCode, qty)
		if err != nil {
			// Reported once, never retried.
			r.log.WithError(err).WithField("item_code", itemCode).Warn("stock call failed")
			return
		}
		r.apply(itemCode, mySeq, result)
	}()
}

// apply reconciles the displayed quantity from a response, dropping it
// when a newer request for the same item is already in flight.
func (r *Reserver) apply(itemCode string, seq uint64, result *backend.StockResult) {
	qty, ok := reconciledQuantity(result)
	if !ok {
		if !result.Success {
			r.log.WithFields(logrus.Fields{
				"item_code": itemCode,
				"message":   result.Message,
			}).Warn("stock request rejected")
		}
		return
	}

	r.mu.Lock()
	stale := seq != r.seq[itemCode]
	if !stale {
		r.display[itemCode] = qty
	}
	r.mu.Unlock()

	if stale {
		r.log.WithField("item_code", itemCode).Debug("dropping stale stock response")
		return
	}

	if !result.Success {
		r.log.WithFields(logrus.Fields{
			"item_code": itemCode,
			"message":   result.Message,
		}).Warn("stock request rejected, reconciled from server hint")
	}

	r.publish(itemCode, qty)
}

// reconciledQuantity extracts the quantity a response tells us to
// display: new_quantity on success, or the "only N available" hint on a
// rejection.
func reconciledQuantity(result *backend.StockResult) (int, bool) {
	if result.Success {
		if result.NewQuantity != nil {
			return *result.NewQuantity, true
		}
		return 0, false
	}

	match := availableHint.FindStringSubmatch(result.Message)
	if match == nil {
		return 0, false
	}
	qty, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return qty, true
}

func (r *Reserver) publish(itemCode string, qty int) {
	if r.rdb == nil {
		return
	}

	event := StockEvent{Event: EventStockUpdated, ItemCode: itemCode, Quantity: qty}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := r.rdb.Publish(ctx, stockEventChannel, payload).Err(); err != nil {
		r.log.WithError(err).Warn("failed to publish stock event")
	}
}

// DisplayedQuantity returns the last reconciled available quantity for an
// item, if any response has landed for it.
func (r *Reserver) DisplayedQuantity(itemCode string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qty, ok := r.display[itemCode]
	return qty, ok
}

// Displayed snapshots every reconciled quantity, keyed by item code.
func (r *Reserver) Displayed() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.display))
	for code, qty := range r.display {
		out[code] = qty
	}
	return out
}

// SetDisplayed records an authoritative quantity, such as a saved
// inventory edit, and invalidates any in-flight responses for the item.
func (r *Reserver) SetDisplayed(itemCode string, qty int) {
	r.mu.Lock()
	r.seq[itemCode]++
	r.display[itemCode] = qty
	r.mu.Unlock()

	r.publish(itemCode, qty)
}

// Wait blocks until all in-flight calls have completed. Tests use it to
// observe reconciliation deterministically.
func (r *Reserver) Wait() {
	r.wg.Wait()
}
