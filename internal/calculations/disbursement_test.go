package calculations

import (
	"testing"
	"time"
)

func TestPaymentSchedule(t *testing.T) {
	disbursedAt := time.Date(2025, 3, 10, 15, 42, 0, 0, time.UTC)

	payments := PaymentSchedule(4, 974.87, disbursedAt)
	if len(payments) != 4 {
		t.Fatalf("expected 4 payments, got %d", len(payments))
	}

	wantDates := []string{"2025-04-10", "2025-05-10", "2025-06-10", "2025-07-10"}
	for i, p := range payments {
		if p.InstallmentNumber != i+1 {
			t.Errorf("expected installment %d, got %d", i+1, p.InstallmentNumber)
		}
		if p.Amount != 974.87 {
			t.Errorf("expected amount 974.87, got %v", p.Amount)
		}
		if p.Status != PaymentPending {
			t.Errorf("expected pending status, got %s", p.Status)
		}
		if got := p.DueDate.Format("2006-01-02"); got != wantDates[i] {
			t.Errorf("installment %d: expected due date %s, got %s", i+1, wantDates[i], got)
		}
		if p.DueDate.Hour() != 0 || p.DueDate.Minute() != 0 {
			t.Errorf("installment %d: due date keeps time of day: %v", i+1, p.DueDate)
		}
	}
}

func TestPaymentScheduleEmpty(t *testing.T) {
	if got := PaymentSchedule(0, 100, time.Now()); len(got) != 0 {
		t.Errorf("expected no payments, got %d", len(got))
	}
	if got := PaymentSchedule(-1, 100, time.Now()); len(got) != 0 {
		t.Errorf("expected no payments, got %d", len(got))
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   string
	}{
		{"same day next month", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 1, "2025-02-15"},
		{"clamp to february", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2025-02-28"},
		{"clamp to leap february", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, "2024-02-29"},
		{"clamp to 30 day month", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 1, "2025-04-30"},
		{"year rollover", time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC), 3, "2026-02-28"},
		{"long term", time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), 12, "2026-08-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.from, tt.months).Format("2006-01-02"); got != tt.want {
				t.Errorf("AddMonths() = %s, want %s", got, tt.want)
			}
		})
	}
}
