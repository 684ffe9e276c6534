package strategy

import (
	"context"
	"time"

	"order-fulfillment/internal/orders"
)

// Normal fulfills regular catalog items. In stock: decrement. Out of stock
// with a lead time: keep the count at zero and tell the customer when to
// expect a restock. Out of stock with no lead time: the item is permanently
// unavailable and the order is a silent no-op.
type Normal struct {
	notifier orders.Notifier
}

func (s Normal) Process(_ time.Time, p orders.Product) (Result, error) {
	switch {
	case p.Available > 0:
		remaining := p.Available - 1
		return Result{
			UpdateStock: true,
			Update:      orders.ProductUpdate{Available: &remaining},
		}, nil

	case p.LeadTime > 0:
		// No quantity is reserved; the lead time is written back unchanged
		// so the record still reflects the expected restock.
		leadTime := p.LeadTime
		return Result{
			UpdateStock: true,
			Update:      orders.ProductUpdate{LeadTime: &leadTime},
			Notify: func(ctx context.Context) error {
				return s.notifier.SendDelayNotification(ctx, leadTime, p.Name)
			},
		}, nil

	default:
		return Result{}, nil
	}
}
