// Package loans provides fixed-rate mortgage amortization utilities.
package loans

import (
	"math"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
)

// ScheduleEntry holds the values for a given loan month.
type ScheduleEntry struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Schedule is a month-ordered amortization schedule; entry i is month i+1.
type Schedule []ScheduleEntry

// CalculateMonthlyPayment calculates the monthly payment for a loan using the
// standard amortization formula. A zero rate amortizes linearly.
func CalculateMonthlyPayment(principal, monthlyRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}

	power := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * monthlyRate * power / (power - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(balance, monthlyRate float64) float64 {
	return balance * monthlyRate
}

// MonthlyRate converts an annual decimal rate into its nominal monthly rate.
func MonthlyRate(annualRate float64) float64 {
	return annualRate / constants.MonthsPerYear
}

// CalculateAmortizationSchedule computes the full schedule for a fixed-rate
// loan. annualRate is a decimal (0.065 for 6.5%). Every entry carries the same
// payment; extra principal is not modeled here.
func CalculateAmortizationSchedule(principal, annualRate float64, termMonths int) Schedule {
	if termMonths <= 0 {
		return Schedule{}
	}

	monthlyRate := MonthlyRate(annualRate)
	payment := CalculateMonthlyPayment(principal, monthlyRate, termMonths)
	schedule := make(Schedule, 0, termMonths)

	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(balance, monthlyRate)
		principalPortion := payment - interest
		balance = math.Max(0, balance-principalPortion)
		if month == termMonths {
			// We will get machine error otherwise so just set to 0.
			balance = 0
		}

		schedule = append(schedule, ScheduleEntry{
			Month:     month,
			Payment:   payment,
			Principal: principalPortion,
			Interest:  interest,
			Balance:   balance,
		})
	}

	return schedule
}

func (s Schedule) entry(month int) (ScheduleEntry, bool) {
	if month <= 0 || month > len(s) {
		return ScheduleEntry{}, false
	}
	return s[month-1], true
}

// Balance returns the remaining principal after the given month's payment, or
// 0 when the month is outside the schedule.
func (s Schedule) Balance(month int) float64 {
	entry, ok := s.entry(month)
	if !ok {
		return 0
	}
	return entry.Balance
}

// Interest returns the interest paid in the given month, or 0 when the month
// is outside the schedule.
func (s Schedule) Interest(month int) float64 {
	entry, ok := s.entry(month)
	if !ok {
		return 0
	}
	return entry.Interest
}

// Principal returns the principal paid in the given month, or 0 when the month
// is outside the schedule.
func (s Schedule) Principal(month int) float64 {
	entry, ok := s.entry(month)
	if !ok {
		return 0
	}
	return entry.Principal
}

// TotalInterest sums the interest paid over the first months of the schedule.
func (s Schedule) TotalInterest(months int) float64 {
	total := 0.0
	for month := 1; month <= months && month <= len(s); month++ {
		total += s[month-1].Interest
	}
	return total
}
