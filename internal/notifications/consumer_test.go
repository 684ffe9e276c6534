package notifications

import (
	"strings"
	"testing"
	"time"

	"order-fulfillment/internal/orders"
)

func TestCustomerMessage(t *testing.T) {
	expiry := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   orders.NotificationEvent
		want    string
		wantErr bool
	}{
		{
			name:  "delay",
			event: orders.NotificationEvent{Type: orders.NotificationDelay, ProductName: "USB Dongle", LeadTimeDays: 10},
			want:  "restock expected in 10 days",
		},
		{
			name:  "out of stock",
			event: orders.NotificationEvent{Type: orders.NotificationOutOfStock, ProductName: "Grasshopper"},
			want:  `"Grasshopper" is out of stock`,
		},
		{
			name:  "expiration",
			event: orders.NotificationEvent{Type: orders.NotificationExpiration, ProductName: "Milk", ExpiryDate: &expiry},
			want:  "expired on 2026-04-30",
		},
		{
			name:    "expiration without date",
			event:   orders.NotificationEvent{Type: orders.NotificationExpiration, ProductName: "Milk"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			event:   orders.NotificationEvent{Type: "telegram", ProductName: "Milk"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := customerMessage(tt.event)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got message %q", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Fatalf("want message containing %q, got %q", tt.want, got)
			}
		})
	}
}
