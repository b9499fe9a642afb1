package validators

import (
	"errors"
	"math"
	"testing"
)

type testLimits struct{}

func (testLimits) AmountRange() (float64, float64) { return 500, 50000 }
func (testLimits) TermRange() (int, int)           { return 3, 48 }
func (testLimits) MaxMonthlyRate() float64         { return 0.2 }

func TestValidators(t *testing.T) {
	limits := testLimits{}

	tests := []struct {
		name      string
		validator func(Limits, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid amount",
			validator: func(l Limits, v interface{}) error { return CheckAmount(l, v.(float64)) },
			value:     10000.0,
			wantError: false,
		},
		{
			name:      "amount below minimum",
			validator: func(l Limits, v interface{}) error { return CheckAmount(l, v.(float64)) },
			value:     499.99,
			wantError: true,
		},
		{
			name:      "amount above maximum",
			validator: func(l Limits, v interface{}) error { return CheckAmount(l, v.(float64)) },
			value:     50000.01,
			wantError: true,
		},
		{
			name:      "amount NaN",
			validator: func(l Limits, v interface{}) error { return CheckAmount(l, v.(float64)) },
			value:     math.NaN(),
			wantError: true,
		},
		{
			name:      "valid rate",
			validator: func(l Limits, v interface{}) error { return CheckRate(l, v.(float64)) },
			value:     0.025,
			wantError: false,
		},
		{
			name:      "zero rate",
			validator: func(l Limits, v interface{}) error { return CheckRate(l, v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid rate negative",
			validator: func(l Limits, v interface{}) error { return CheckRate(l, v.(float64)) },
			value:     -0.01,
			wantError: true,
		},
		{
			name:      "valid term",
			validator: func(l Limits, v interface{}) error { return CheckTerm(l, v.(int)) },
			value:     12,
			wantError: false,
		},
		{
			name:      "invalid term zero",
			validator: func(l Limits, v interface{}) error { return CheckTerm(l, v.(int)) },
			value:     0,
			wantError: true,
		},
		{
			name:      "term above maximum",
			validator: func(l Limits, v interface{}) error { return CheckTerm(l, v.(int)) },
			value:     49,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(limits, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestCheckLoanReportsField(t *testing.T) {
	err := CheckLoan(testLimits{}, 1000, 60, 0.02)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "termMonths" {
		t.Errorf("expected field termMonths, got %s", vErr.Field)
	}

	if err := CheckLoan(testLimits{}, 1000, 12, 0.02); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
