package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters exposed on the health endpoint.
var (
	OrdersCreated    Counter
	OrdersPaid       Counter
	OrdersFailed     Counter
	PaymentSessions  Counter
	WebhooksReceived Counter
	WebhooksRejected Counter
)

// Snapshot returns the counters as a map for the health endpoint.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"orders_created":    OrdersCreated.Load(),
		"orders_paid":       OrdersPaid.Load(),
		"orders_failed":     OrdersFailed.Load(),
		"payment_sessions":  PaymentSessions.Load(),
		"webhooks_received": WebhooksReceived.Load(),
		"webhooks_rejected": WebhooksRejected.Load(),
	}
}
