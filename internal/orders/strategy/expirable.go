package strategy

import (
	"context"
	"fmt"
	"time"

	"order-fulfillment/internal/orders"
)

// Expirable fulfills products with a shelf life. Expired stock is discarded
// outright: the count is forced to zero even when it was still positive.
// An exhausted but unexpired product takes the same branch and also receives
// the expiration notification.
type Expirable struct {
	notifier orders.Notifier
}

func (s Expirable) Process(now time.Time, p orders.Product) (Result, error) {
	if p.ExpiryDate == nil {
		return Result{}, fmt.Errorf("%w: expirable product %d has no expiry date", orders.ErrMissingDateFields, p.ID)
	}
	expiry := *p.ExpiryDate

	if p.Available > 0 && expiry.After(now) {
		remaining := p.Available - 1
		return Result{
			UpdateStock: true,
			Update:      orders.ProductUpdate{Available: &remaining},
		}, nil
	}

	zero := 0
	return Result{
		UpdateStock: true,
		Update:      orders.ProductUpdate{Available: &zero},
		Notify: func(ctx context.Context) error {
			return s.notifier.SendExpirationNotification(ctx, p.Name, expiry)
		},
	}, nil
}
