package strategy

import (
	"errors"
	"testing"
	"time"

	"order-fulfillment/internal/orders"
)

func TestSeasonal_Process(t *testing.T) {
	now := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	seasonStart := now.AddDate(0, 0, -30)
	seasonEnd := now.AddDate(0, 0, 20)

	tests := []struct {
		name          string
		available     int
		leadTime      int
		start         time.Time
		end           time.Time
		wantUpdate    bool
		wantAvailable *int
		wantLeadTime  *int
		wantNotify    string
	}{
		{
			name:          "in season and in stock decrements",
			available:     5,
			start:         seasonStart,
			end:           seasonEnd,
			wantUpdate:    true,
			wantAvailable: intPtr(4),
		},
		{
			name:          "restock after season end is out of stock",
			available:     0,
			leadTime:      30, // 20 days left in season
			start:         seasonStart,
			end:           seasonEnd,
			wantUpdate:    true,
			wantAvailable: intPtr(0),
			wantNotify:    orders.NotificationOutOfStock,
		},
		{
			name:         "restock within season delays",
			available:    0,
			leadTime:     10,
			start:        seasonStart,
			end:          seasonEnd,
			wantUpdate:   true,
			wantLeadTime: intPtr(10),
			wantNotify:   orders.NotificationDelay,
		},
		{
			name:       "before season start reports out of stock without touching stock",
			available:  8,
			start:      now.AddDate(0, 0, 5),
			end:        now.AddDate(0, 0, 60),
			wantNotify: orders.NotificationOutOfStock,
		},
		{
			name:      "season over with stock remaining is a no-op",
			available: 3,
			start:     now.AddDate(0, 0, -60),
			end:       now.AddDate(0, 0, -10),
		},
		{
			name:      "exact season start instant counts as out of season",
			available: 3,
			start:     now,
			end:       seasonEnd,
			// now == start and now > start both fail; available > 0, so the
			// final silent branch applies.
		},
		{
			name:      "exact season end instant counts as out of season",
			available: 3,
			start:     seasonStart,
			end:       now,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &mockNotifier{}
			start, end := tt.start, tt.end
			product := orders.Product{
				ID:              7,
				Name:            "Grasshopper",
				Type:            orders.TypeSeasonal,
				Available:       tt.available,
				LeadTime:        tt.leadTime,
				SeasonStartDate: &start,
				SeasonEndDate:   &end,
			}

			res, err := Seasonal{notifier: notifier}.Process(now, product)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if res.UpdateStock != tt.wantUpdate {
				t.Fatalf("want UpdateStock %v, got %v", tt.wantUpdate, res.UpdateStock)
			}
			assertUpdate(t, res.Update, tt.wantAvailable, tt.wantLeadTime)

			if tt.wantNotify == "" {
				if res.Notify != nil {
					t.Fatal("expected no notify effect")
				}
				return
			}

			fireNotify(t, res)
			if len(notifier.calls) != 1 {
				t.Fatalf("want 1 notification, got %d", len(notifier.calls))
			}
			call := notifier.calls[0]
			if call.kind != tt.wantNotify {
				t.Fatalf("want %q notification, got %q", tt.wantNotify, call.kind)
			}
			if call.productName != product.Name {
				t.Fatalf("want product name %q, got %q", product.Name, call.productName)
			}
			if tt.wantNotify == orders.NotificationDelay && call.leadTimeDays != tt.leadTime {
				t.Fatalf("want lead time %d, got %d", tt.leadTime, call.leadTimeDays)
			}
		})
	}
}

func TestSeasonal_MissingSeasonWindow(t *testing.T) {
	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
	}{
		{name: "both dates absent"},
		{name: "end date absent", start: timePtr(time.Now())},
		{name: "start date absent", end: timePtr(time.Now())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := orders.Product{
				ID:              9,
				Name:            "Broken Record",
				Type:            orders.TypeSeasonal,
				Available:       4,
				SeasonStartDate: tt.start,
				SeasonEndDate:   tt.end,
			}

			_, err := Seasonal{notifier: &mockNotifier{}}.Process(time.Now(), product)
			if !errors.Is(err, orders.ErrMissingDateFields) {
				t.Fatalf("want ErrMissingDateFields, got %v", err)
			}
		})
	}
}

func timePtr(v time.Time) *time.Time {
	return &v
}
