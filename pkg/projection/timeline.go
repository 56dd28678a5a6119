// Package projection simulates owning versus renting month by month and
// derives summary metrics from the resulting timeline. Every function is pure.
package projection

import (
	"math"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/growth"
	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
	"github.com/iwvelando/rent-vs-buy/pkg/networth"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
)

// TimelinePoint holds one month of owner and renter cash flows together with
// the running state carried into the next month.
type TimelinePoint struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	// Owner costs
	OwnerUnrecoverableMonthly float64 `json:"ownerUnrecoverableMonthly"`
	MortgageInterest          float64 `json:"mortgageInterest"`
	PropertyTax               float64 `json:"propertyTax"`
	Insurance                 float64 `json:"insurance"`
	Maintenance               float64 `json:"maintenance"`
	PMI                       float64 `json:"pmi"`
	MortgagePayment           float64 `json:"mortgagePayment"`
	MortgagePrincipal         float64 `json:"mortgagePrincipal"`
	MortgageBalance           float64 `json:"mortgageBalance"`

	RentMonthly float64 `json:"rentMonthly"`
	HomeValue   float64 `json:"homeValue"`

	OwnerNetWorth             float64 `json:"ownerNetWorth"`
	RenterNetWorth            float64 `json:"renterNetWorth"`
	RenterInvestmentBalance   float64 `json:"renterInvestmentBalance"`
	RenterMonthlyContribution float64 `json:"renterMonthlyContribution"`

	// Cumulative totals
	OwnerTotalUnrecoverable  float64 `json:"ownerTotalUnrecoverable"`
	RenterTotalUnrecoverable float64 `json:"renterTotalUnrecoverable"`
	OwnerTotalPrincipalPaid  float64 `json:"ownerTotalPrincipalPaid"`
}

// OwnerTotalOutflow is the owner's full cash outlay for the month, principal
// included.
func (p TimelinePoint) OwnerTotalOutflow() float64 {
	return p.MortgagePayment + p.PropertyTax + p.Insurance + p.Maintenance + p.PMI
}

// Timeline is the month-ordered projection; entry i is month i+1.
type Timeline []TimelinePoint

// At returns the point for a 1-based month.
func (t Timeline) At(month int) (TimelinePoint, bool) {
	if month <= 0 || month > len(t) {
		return TimelinePoint{}, false
	}
	return t[month-1], true
}

// mortgageMonth is one month of loan activity.
type mortgageMonth struct {
	interest  float64
	principal float64
	balance   float64
}

// payMortgage applies one month of payments to balance. The base principal is
// capped at the balance and extra principal at what remains after it.
func payMortgage(balance, monthlyRate, basePayment, extraPrincipal float64) mortgageMonth {
	if balance <= 0 {
		return mortgageMonth{}
	}

	interest := loans.CalculateInterestPayment(balance, monthlyRate)
	basePrincipal := math.Min(basePayment-interest, balance)
	extra := math.Min(extraPrincipal, math.Max(0, balance-basePrincipal))
	principal := basePrincipal + extra

	remaining := math.Max(0, balance-principal)
	if mathutil.Round(remaining) == 0 {
		// Fold sub-cent floating residue into this payment.
		principal = balance
		remaining = 0
	}

	return mortgageMonth{interest: interest, principal: principal, balance: remaining}
}

// BuildTimeline runs the month-by-month simulation over the scenario horizon.
// The mortgage balance is recomputed each month so extra principal payments
// shorten the loan and lower all later interest.
func BuildTimeline(in scenario.Inputs) Timeline {
	totalMonths := in.TotalMonths()
	if totalMonths <= 0 {
		return Timeline{}
	}

	downPayment := in.DownPaymentAmount()
	loanPrincipal := in.LoanPrincipal()
	monthlyRate := loans.MonthlyRate(mathutil.PercentToDecimal(in.InterestRate))
	basePayment := 0.0
	if loanPrincipal > 0 {
		basePayment = loans.CalculateMonthlyPayment(loanPrincipal, monthlyRate, in.TermMonths())
	}

	appreciationRate := mathutil.PercentToDecimal(in.AnnualAppreciationRate)
	rentGrowthRate := mathutil.PercentToDecimal(in.RentGrowthRate)
	sellingCostRate := mathutil.PercentToDecimal(in.SellingCostRate)
	monthlyReturnRate := mathutil.EquivalentMonthlyRate(mathutil.PercentToDecimal(in.AnnualReturnRate))
	pmiMonthly := mathutil.ApplyPercentage(loanPrincipal, in.PMIRate) / constants.MonthsPerYear
	pmiCutoff := loanPrincipal * constants.PMILoanToValueCutoff
	extraPrincipal := math.Max(0, in.ExtraPrincipalPayment)

	timeline := make(Timeline, 0, totalMonths)

	currentMortgageBalance := math.Max(0, loanPrincipal)
	renterInvestmentBalance := downPayment
	ownerTotalUnrecoverable := 0.0
	renterTotalUnrecoverable := 0.0
	ownerTotalPrincipalPaid := 0.0

	for month := 1; month <= totalMonths; month++ {
		loanActive := currentMortgageBalance > 0
		mortgage := payMortgage(currentMortgageBalance, monthlyRate, basePayment, extraPrincipal)
		currentMortgageBalance = mortgage.balance

		homeValue := growth.CalculateHomeValue(in.HomePrice, appreciationRate, month)
		propertyTax := mathutil.ApplyPercentage(homeValue, in.PropertyTaxRate) / constants.MonthsPerYear
		maintenance := mathutil.ApplyPercentage(homeValue, in.MaintenanceRate) / constants.MonthsPerYear
		insurance := in.InsuranceMonthly

		pmi := 0.0
		if loanActive && in.PMIApplies() && mortgage.balance > pmiCutoff {
			pmi = pmiMonthly
		}

		ownerUnrecoverableMonthly := mortgage.interest + propertyTax + insurance + maintenance + pmi
		ownerTotalUnrecoverable += ownerUnrecoverableMonthly
		ownerTotalPrincipalPaid += mortgage.principal

		rentMonthly := growth.GetRentAtMonth(in.CurrentRent, rentGrowthRate, month)
		renterTotalUnrecoverable += rentMonthly

		point := TimelinePoint{
			Month:                     month,
			Year:                      (month + constants.MonthsPerYear - 1) / constants.MonthsPerYear,
			OwnerUnrecoverableMonthly: ownerUnrecoverableMonthly,
			MortgageInterest:          mortgage.interest,
			PropertyTax:               propertyTax,
			Insurance:                 insurance,
			Maintenance:               maintenance,
			PMI:                       pmi,
			MortgagePayment:           mortgage.interest + mortgage.principal,
			MortgagePrincipal:         mortgage.principal,
			MortgageBalance:           mortgage.balance,
			RentMonthly:               rentMonthly,
			HomeValue:                 homeValue,
			OwnerTotalUnrecoverable:   ownerTotalUnrecoverable,
			RenterTotalUnrecoverable:  renterTotalUnrecoverable,
			OwnerTotalPrincipalPaid:   ownerTotalPrincipalPaid,
		}

		// The renter banks whatever owning costs beyond rent.
		point.RenterMonthlyContribution = math.Max(0, point.OwnerTotalOutflow()-rentMonthly)
		renterInvestmentBalance = networth.GrowAndContribute(renterInvestmentBalance, monthlyReturnRate, point.RenterMonthlyContribution)
		point.RenterInvestmentBalance = renterInvestmentBalance

		point.OwnerNetWorth = networth.CalculateOwnerNetWorth(homeValue, sellingCostRate, mortgage.balance)
		point.RenterNetWorth = renterInvestmentBalance

		timeline = append(timeline, point)
	}

	return timeline
}
