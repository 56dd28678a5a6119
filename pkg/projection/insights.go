package projection

import (
	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
)

// MonthlyBreakdown splits the owner's full monthly outlay into its parts.
type MonthlyBreakdown struct {
	Total           float64 `json:"total"`
	MortgagePayment float64 `json:"mortgagePayment"`
	PropertyTax     float64 `json:"propertyTax"`
	Insurance       float64 `json:"insurance"`
	Maintenance     float64 `json:"maintenance"`
	PMI             float64 `json:"pmi"`
}

// Insights gathers the headline figures shown next to the metrics.
type Insights struct {
	FirstMonth MonthlyBreakdown `json:"firstMonth"`

	DownPayment   float64 `json:"downPayment"`
	ClosingCosts  float64 `json:"closingCosts"`
	UpfrontCash   float64 `json:"upfrontCash"`
	LoanPrincipal float64 `json:"loanPrincipal"`
	BasePayment   float64 `json:"basePayment"`

	// PayoffMonth is 0 when the loan is not paid off within the horizon.
	PayoffMonth int `json:"payoffMonth"`
	// PMIDropMonth is the first month without PMI after it was charged, or 0.
	PMIDropMonth int `json:"pmiDropMonth"`

	TotalInterestPaid float64 `json:"totalInterestPaid"`
	InterestSaved     float64 `json:"interestSaved"`

	// UnrecoverableDifference10 is owner minus renter unrecoverable cost at
	// year 10.
	UnrecoverableDifference10 float64 `json:"unrecoverableDifference10"`
}

// ComputeInsights derives payment, upfront cash and loan payoff figures from a
// timeline built for in.
func ComputeInsights(timeline Timeline, in scenario.Inputs) Insights {
	loanPrincipal := in.LoanPrincipal()
	annualRate := mathutil.PercentToDecimal(in.InterestRate)

	insights := Insights{
		DownPayment:   in.DownPaymentAmount(),
		ClosingCosts:  in.ClosingCosts(),
		UpfrontCash:   in.UpfrontCash(),
		LoanPrincipal: loanPrincipal,
	}
	if loanPrincipal > 0 {
		insights.BasePayment = loans.CalculateMonthlyPayment(loanPrincipal, loans.MonthlyRate(annualRate), in.TermMonths())
	}

	if first, ok := timeline.At(1); ok {
		insights.FirstMonth = MonthlyBreakdown{
			Total:           first.OwnerTotalOutflow(),
			MortgagePayment: first.MortgagePayment,
			PropertyTax:     first.PropertyTax,
			Insurance:       first.Insurance,
			Maintenance:     first.Maintenance,
			PMI:             first.PMI,
		}
	}

	pmiCharged := false
	for _, point := range timeline {
		insights.TotalInterestPaid += point.MortgageInterest

		if insights.PayoffMonth == 0 && loanPrincipal > 0 && point.MortgageBalance == 0 {
			insights.PayoffMonth = point.Month
		}

		if point.PMI > 0 {
			pmiCharged = true
		} else if pmiCharged && insights.PMIDropMonth == 0 {
			insights.PMIDropMonth = point.Month
		}
	}

	if loanPrincipal > 0 {
		schedule := loans.CalculateAmortizationSchedule(loanPrincipal, annualRate, in.TermMonths())
		saved := schedule.TotalInterest(len(timeline)) - insights.TotalInterestPaid
		if !mathutil.IsZero(saved) {
			insights.InterestSaved = saved
		}
	}

	metrics := ComputeMetrics(timeline, in)
	insights.UnrecoverableDifference10 = metrics.TotalUnrecoverableOwner10 - metrics.TotalUnrecoverableRenter10

	return insights
}
