// Package processor runs an order's products through the fulfillment
// strategies and applies their effects.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"order-fulfillment/internal/orders"
	"order-fulfillment/internal/orders/strategy"

	"github.com/prometheus/client_golang/prometheus"
)

type Repository interface {
	UpdateProduct(ctx context.Context, id int64, update orders.ProductUpdate) error
}

type Selector interface {
	ForType(t orders.ProductType) (strategy.Strategy, error)
}

type Processor struct {
	repo          Repository
	selector      Selector
	logger        *slog.Logger
	now           func() time.Time
	processed     prometheus.Counter
	stockUpdates  prometheus.Counter
	notifications prometheus.Counter
}

func New(repo Repository, selector Selector, logger *slog.Logger, processed, stockUpdates, notifications prometheus.Counter) *Processor {
	return &Processor{
		repo:          repo,
		selector:      selector,
		logger:        logger,
		now:           time.Now,
		processed:     processed,
		stockUpdates:  stockUpdates,
		notifications: notifications,
	}
}

// ProcessOrder fulfills each product strictly in sequence. The stock update
// for one product is durably applied before its notification fires and before
// the next product is evaluated, so each decision sees the state left by the
// previous one. The first failure halts the remaining items and propagates.
func (p *Processor) ProcessOrder(ctx context.Context, products []orders.Product) error {
	for _, product := range products {
		if err := p.ProcessProductOrder(ctx, product); err != nil {
			return fmt.Errorf("process product %d: %w", product.ID, err)
		}
	}
	return nil
}

// ProcessProductOrder fulfills a single product: select the strategy, run it,
// persist the stock change if one was requested, then fire the notification.
func (p *Processor) ProcessProductOrder(ctx context.Context, product orders.Product) error {
	strat, err := p.selector.ForType(product.Type)
	if err != nil {
		return err
	}

	result, err := strat.Process(p.now().UTC(), product)
	if err != nil {
		return err
	}

	if result.UpdateStock {
		if err := p.repo.UpdateProduct(ctx, product.ID, result.Update); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		p.stockUpdates.Inc()
	}

	if result.Notify != nil {
		// Fire-and-forget: a failed send must not undo or block the
		// stock change that already happened.
		if err := result.Notify(ctx); err != nil {
			p.logger.Error("send notification failed",
				"product_id", product.ID,
				"product_name", product.Name,
				"error", err,
			)
		} else {
			p.notifications.Inc()
		}
	}

	p.processed.Inc()
	return nil
}
