package orders

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound               = errors.New("product not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrUnsupportedProductType = errors.New("unsupported product type")
	ErrMissingDateFields      = errors.New("missing required date fields")
)

const (
	NotificationsQueue = "orders.notifications"

	NotificationDelay      = "delay"
	NotificationOutOfStock = "out_of_stock"
	NotificationExpiration = "expiration"
)

// ProductType is a closed set of variant tags; a product keeps its type for life.
type ProductType string

const (
	TypeNormal    ProductType = "NORMAL"
	TypeSeasonal  ProductType = "SEASONAL"
	TypeExpirable ProductType = "EXPIRABLE"
)

// Product is one catalog item. The date pointers follow the type: SEASONAL
// products carry both season dates and no expiry, EXPIRABLE products carry an
// expiry and no season dates, NORMAL products carry none of the three.
type Product struct {
	ID              int64       `json:"id" example:"1"`
	Name            string      `json:"name" example:"USB Cable"`
	Type            ProductType `json:"type" example:"NORMAL"`
	Available       int         `json:"available" example:"30"`
	LeadTime        int         `json:"lead_time" example:"10"`
	SeasonStartDate *time.Time  `json:"season_start_date,omitempty"`
	SeasonEndDate   *time.Time  `json:"season_end_date,omitempty"`
	ExpiryDate      *time.Time  `json:"expiry_date,omitempty"`
	CreatedAt       time.Time   `json:"created_at" example:"2026-02-24T12:00:00Z"`
}

// Order is a transient grouping of products to fulfill. Products outlive
// orders; the order itself owns no mutable state beyond the reference list.
type Order struct {
	ID        int64     `json:"id" example:"1"`
	Products  []Product `json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductUpdate is a partial update: only non-nil fields are written.
type ProductUpdate struct {
	Available *int
	LeadTime  *int
}

func (u ProductUpdate) IsZero() bool {
	return u.Available == nil && u.LeadTime == nil
}

type NotificationEvent struct {
	Type         string     `json:"type"`
	ProductName  string     `json:"product_name"`
	LeadTimeDays int        `json:"lead_time_days,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}

// Notifier is the outbound customer-notification port. Sends are
// fire-and-forget for callers: a failed send is logged, never retried here.
type Notifier interface {
	SendDelayNotification(ctx context.Context, leadTimeDays int, productName string) error
	SendOutOfStockNotification(ctx context.Context, productName string) error
	SendExpirationNotification(ctx context.Context, productName string, expiryDate time.Time) error
}
