package strategy

import (
	"context"
	"fmt"
	"time"

	"order-fulfillment/internal/orders"
)

// Seasonal fulfills products sellable only inside their season window. The
// window test is strict on both ends: at the exact start or end instant the
// product counts as out of season.
type Seasonal struct {
	notifier orders.Notifier
}

func (s Seasonal) Process(now time.Time, p orders.Product) (Result, error) {
	if p.SeasonStartDate == nil || p.SeasonEndDate == nil {
		return Result{}, fmt.Errorf("%w: seasonal product %d has no season window", orders.ErrMissingDateFields, p.ID)
	}
	start, end := *p.SeasonStartDate, *p.SeasonEndDate

	switch {
	case now.After(start) && now.Before(end) && p.Available > 0:
		remaining := p.Available - 1
		return Result{
			UpdateStock: true,
			Update:      orders.ProductUpdate{Available: &remaining},
		}, nil

	case p.Available == 0:
		restock := now.AddDate(0, 0, p.LeadTime)
		if restock.After(end) {
			// Restock lands after the season closes; the product cannot be
			// served again this cycle.
			zero := 0
			return Result{
				UpdateStock: true,
				Update:      orders.ProductUpdate{Available: &zero},
				Notify: func(ctx context.Context) error {
					return s.notifier.SendOutOfStockNotification(ctx, p.Name)
				},
			}, nil
		}
		leadTime := p.LeadTime
		return Result{
			UpdateStock: true,
			Update:      orders.ProductUpdate{LeadTime: &leadTime},
			Notify: func(ctx context.Context) error {
				return s.notifier.SendDelayNotification(ctx, leadTime, p.Name)
			},
		}, nil

	case now.Before(start):
		// Pre-season demand is reported as unavailable, not queued.
		return Result{
			Notify: func(ctx context.Context) error {
				return s.notifier.SendOutOfStockNotification(ctx, p.Name)
			},
		}, nil

	default:
		// Season already ended with stock remaining.
		return Result{}, nil
	}
}
