package loans

import (
	"math"
	"testing"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		termMonths  int
		expected    float64
		tolerance   float64
	}{
		{
			name:        "30-year loan at 0.5% monthly",
			principal:   400000,
			monthlyRate: 0.005,
			termMonths:  360,
			expected:    2398.20,
			tolerance:   0.01,
		},
		{
			name:        "15-year loan at 0.5% monthly",
			principal:   400000,
			monthlyRate: 0.005,
			termMonths:  180,
			expected:    3375.43,
			tolerance:   0.01,
		},
		{
			name:        "Zero interest amortizes linearly",
			principal:   12000,
			monthlyRate: 0,
			termMonths:  60,
			expected:    200,
			tolerance:   0,
		},
		{
			name:        "Nothing borrowed",
			principal:   0,
			monthlyRate: 0.005,
			termMonths:  360,
			expected:    0,
			tolerance:   0,
		},
		{
			name:        "Non-positive term",
			principal:   100000,
			monthlyRate: 0.005,
			termMonths:  0,
			expected:    0,
			tolerance:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.monthlyRate, tt.termMonths)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	if got := CalculateInterestPayment(200000, MonthlyRate(0.06)); math.Abs(got-1000) > 1e-9 {
		t.Errorf("CalculateInterestPayment() = %.4f, expected 1000", got)
	}
}

func TestCalculateAmortizationSchedule(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termMonths int
	}{
		{name: "30-year at 6%", principal: 400000, annualRate: 0.06, termMonths: 360},
		{name: "15-year at 6.5%", principal: 250000, annualRate: 0.065, termMonths: 180},
		{name: "20-year zero interest", principal: 240000, annualRate: 0, termMonths: 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := CalculateAmortizationSchedule(tt.principal, tt.annualRate, tt.termMonths)
			if len(schedule) != tt.termMonths {
				t.Fatalf("expected %d entries, got %d", tt.termMonths, len(schedule))
			}

			payment := schedule[0].Payment
			previousBalance := tt.principal
			principalSum := 0.0
			for i, entry := range schedule {
				if entry.Month != i+1 {
					t.Fatalf("entry %d has month %d", i, entry.Month)
				}
				if entry.Payment != payment {
					t.Fatalf("month %d payment %.6f differs from %.6f", entry.Month, entry.Payment, payment)
				}
				if entry.Balance > previousBalance {
					t.Fatalf("month %d balance %.2f increased from %.2f", entry.Month, entry.Balance, previousBalance)
				}
				if entry.Balance < 0 {
					t.Fatalf("month %d balance %.2f is negative", entry.Month, entry.Balance)
				}
				previousBalance = entry.Balance
				principalSum += entry.Principal
			}

			if final := schedule[len(schedule)-1].Balance; final != 0 {
				t.Errorf("expected final balance 0, got %.6f", final)
			}
			if math.Abs(principalSum-tt.principal) > 0.01 {
				t.Errorf("principal paid %.4f, expected %.2f", principalSum, tt.principal)
			}
		})
	}
}

func TestCalculateAmortizationScheduleEmptyTerm(t *testing.T) {
	if schedule := CalculateAmortizationSchedule(100000, 0.05, 0); len(schedule) != 0 {
		t.Errorf("expected empty schedule, got %d entries", len(schedule))
	}
}

func TestScheduleAccessors(t *testing.T) {
	schedule := CalculateAmortizationSchedule(100000, 0.06, 120)

	tests := []struct {
		name      string
		month     int
		expectNil bool
	}{
		{name: "before start", month: 0, expectNil: true},
		{name: "negative month", month: -3, expectNil: true},
		{name: "first month", month: 1},
		{name: "last month", month: 120},
		{name: "after payoff", month: 121, expectNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := schedule.Balance(tt.month)
			interest := schedule.Interest(tt.month)
			principal := schedule.Principal(tt.month)

			if tt.expectNil {
				if balance != 0 || interest != 0 || principal != 0 {
					t.Errorf("expected zeros out of range, got balance=%.2f interest=%.2f principal=%.2f",
						balance, interest, principal)
				}
				return
			}

			entry := schedule[tt.month-1]
			if balance != entry.Balance || interest != entry.Interest || principal != entry.Principal {
				t.Errorf("accessors disagree with entry %+v", entry)
			}
		})
	}

	if got := schedule.Interest(1); math.Abs(got-500) > 1e-9 {
		t.Errorf("first month interest = %.4f, expected 500", got)
	}
}

func TestScheduleTotalInterest(t *testing.T) {
	schedule := CalculateAmortizationSchedule(100000, 0.06, 120)

	first := schedule.TotalInterest(1)
	if math.Abs(first-schedule[0].Interest) > 1e-9 {
		t.Errorf("TotalInterest(1) = %.4f, expected %.4f", first, schedule[0].Interest)
	}

	all := schedule.TotalInterest(1000)
	manual := 0.0
	for _, entry := range schedule {
		manual += entry.Interest
	}
	if math.Abs(all-manual) > 1e-6 {
		t.Errorf("TotalInterest beyond term = %.4f, expected %.4f", all, manual)
	}

	if schedule.TotalInterest(0) != 0 {
		t.Error("expected zero interest over zero months")
	}
}
