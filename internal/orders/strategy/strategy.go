// Package strategy holds the per-type fulfillment decision logic. A strategy
// is a pure function over a product's state and the current time: it returns
// the intended stock mutation plus an optional deferred notification, and
// performs no I/O itself. The caller applies the stock update first, then
// invokes the notify effect.
package strategy

import (
	"context"
	"fmt"
	"time"

	"order-fulfillment/internal/orders"
)

// Result is what a strategy decides for one product. It is consumed
// immediately by the order processor and never persisted.
type Result struct {
	// UpdateStock requests that Update be applied to the persisted product.
	UpdateStock bool
	Update      orders.ProductUpdate
	// Notify, when non-nil, sends the customer notification for this
	// decision. It must be invoked only after the stock update is durable.
	Notify func(ctx context.Context) error
}

type Strategy interface {
	Process(now time.Time, p orders.Product) (Result, error)
}

// Selector maps a product-type tag to its strategy. Stateless and safe for
// concurrent use.
type Selector struct {
	notifier orders.Notifier
}

func NewSelector(notifier orders.Notifier) *Selector {
	return &Selector{notifier: notifier}
}

func (s *Selector) ForType(t orders.ProductType) (Strategy, error) {
	switch t {
	case orders.TypeNormal:
		return Normal{notifier: s.notifier}, nil
	case orders.TypeSeasonal:
		return Seasonal{notifier: s.notifier}, nil
	case orders.TypeExpirable:
		return Expirable{notifier: s.notifier}, nil
	default:
		return nil, fmt.Errorf("%w: %q", orders.ErrUnsupportedProductType, t)
	}
}
