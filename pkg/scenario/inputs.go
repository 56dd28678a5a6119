// Package scenario defines the inputs describing one rent-vs-buy comparison.
package scenario

import (
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
)

// Inputs is the complete description of one comparison scenario. Rate fields
// hold whole percentages (6.5 means 6.5%).
type Inputs struct {
	// Home
	HomePrice          float64 `json:"homePrice" yaml:"homePrice" mapstructure:"homePrice"`
	DownPaymentPercent float64 `json:"downPaymentPercent" yaml:"downPaymentPercent" mapstructure:"downPaymentPercent"`
	InterestRate       float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	LoanTermYears      int     `json:"loanTermYears" yaml:"loanTermYears" mapstructure:"loanTermYears"`

	// Ownership costs
	PropertyTaxRate  float64 `json:"propertyTaxRate" yaml:"propertyTaxRate" mapstructure:"propertyTaxRate"`
	InsuranceMonthly float64 `json:"insuranceMonthly" yaml:"insuranceMonthly" mapstructure:"insuranceMonthly"`
	MaintenanceRate  float64 `json:"maintenanceRate" yaml:"maintenanceRate" mapstructure:"maintenanceRate"`
	SellingCostRate  float64 `json:"sellingCostRate" yaml:"sellingCostRate" mapstructure:"sellingCostRate"`
	ClosingCostRate  float64 `json:"closingCostRate" yaml:"closingCostRate" mapstructure:"closingCostRate"`

	// Rent
	CurrentRent    float64 `json:"currentRent" yaml:"currentRent" mapstructure:"currentRent"`
	RentGrowthRate float64 `json:"rentGrowthRate" yaml:"rentGrowthRate" mapstructure:"rentGrowthRate"`

	AnnualReturnRate       float64 `json:"annualReturnRate" yaml:"annualReturnRate" mapstructure:"annualReturnRate"`
	AnnualAppreciationRate float64 `json:"annualAppreciationRate" yaml:"annualAppreciationRate" mapstructure:"annualAppreciationRate"`
	HorizonYears           int     `json:"horizonYears" yaml:"horizonYears" mapstructure:"horizonYears"`

	// PMI
	PMIEnabled bool    `json:"pmiEnabled" yaml:"pmiEnabled" mapstructure:"pmiEnabled"`
	PMIRate    float64 `json:"pmiRate" yaml:"pmiRate" mapstructure:"pmiRate"`

	ExtraPrincipalPayment float64 `json:"extraPrincipalPayment,omitempty" yaml:"extraPrincipalPayment,omitempty" mapstructure:"extraPrincipalPayment"`
}

// Defaults returns the scenario a fresh dashboard starts from.
func Defaults() Inputs {
	return Inputs{
		HomePrice:              500000,
		DownPaymentPercent:     20,
		InterestRate:           6.5,
		LoanTermYears:          30,
		PropertyTaxRate:        1.2,
		InsuranceMonthly:       150,
		MaintenanceRate:        1,
		SellingCostRate:        8,
		ClosingCostRate:        3,
		CurrentRent:            2500,
		RentGrowthRate:         3,
		AnnualReturnRate:       6,
		AnnualAppreciationRate: 3,
		HorizonYears:           15,
		PMIEnabled:             true,
		PMIRate:                0.5,
	}
}

// DownPaymentAmount is the cash put down at purchase; the renter invests the
// same amount instead.
func (in Inputs) DownPaymentAmount() float64 {
	return mathutil.ApplyPercentage(in.HomePrice, in.DownPaymentPercent)
}

// LoanPrincipal is the amount borrowed.
func (in Inputs) LoanPrincipal() float64 {
	return in.HomePrice - in.DownPaymentAmount()
}

// ClosingCosts is the one-time purchase cost implied by the closing cost rate.
func (in Inputs) ClosingCosts() float64 {
	return mathutil.ApplyPercentage(in.HomePrice, in.ClosingCostRate)
}

// UpfrontCash is the total cash needed at purchase.
func (in Inputs) UpfrontCash() float64 {
	return in.DownPaymentAmount() + in.ClosingCosts()
}

// TotalMonths is the number of months in the comparison horizon.
func (in Inputs) TotalMonths() int {
	return in.HorizonYears * constants.MonthsPerYear
}

// TermMonths is the number of months in the loan term.
func (in Inputs) TermMonths() int {
	return in.LoanTermYears * constants.MonthsPerYear
}

// PMIApplies reports whether the scenario is configured to charge PMI at all.
func (in Inputs) PMIApplies() bool {
	return in.PMIEnabled && in.DownPaymentPercent < constants.PMIDownPaymentThreshold
}
