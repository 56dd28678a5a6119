package validation

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
)

// AllowedLoanTerms are the loan terms, in years, a scenario may use.
var AllowedLoanTerms = []int{15, 20, 30}

type bound struct {
	field    string
	value    float64
	min, max float64
	// exclusiveMin rejects value == min.
	exclusiveMin bool
}

func (b bound) check() error {
	if !mathutil.IsFinite(b.value) {
		return fmt.Errorf("%s must be a finite number", b.field)
	}
	if b.exclusiveMin && b.value <= b.min {
		return fmt.Errorf("%s must be greater than %g, got %g", b.field, b.min, b.value)
	}
	if b.value < b.min {
		return fmt.Errorf("%s must be at least %g, got %g", b.field, b.min, b.value)
	}
	if b.value > b.max {
		return fmt.Errorf("%s must be at most %g, got %g", b.field, b.max, b.value)
	}
	return nil
}

// ValidateInputs checks every field of a scenario against its allowed range
// and returns all violations joined together, or nil.
func ValidateInputs(in scenario.Inputs) error {
	unbounded := math.MaxFloat64
	bounds := []bound{
		{field: "homePrice", value: in.HomePrice, min: 0, max: unbounded, exclusiveMin: true},
		{field: "downPaymentPercent", value: in.DownPaymentPercent, min: 0, max: 100},
		{field: "interestRate", value: in.InterestRate, min: 0, max: 30},
		{field: "propertyTaxRate", value: in.PropertyTaxRate, min: 0, max: unbounded},
		{field: "insuranceMonthly", value: in.InsuranceMonthly, min: 0, max: unbounded},
		{field: "maintenanceRate", value: in.MaintenanceRate, min: 0, max: unbounded},
		{field: "sellingCostRate", value: in.SellingCostRate, min: 0, max: 20},
		{field: "closingCostRate", value: in.ClosingCostRate, min: 0, max: 10},
		{field: "currentRent", value: in.CurrentRent, min: 0, max: unbounded},
		{field: "rentGrowthRate", value: in.RentGrowthRate, min: -5, max: 20},
		{field: "annualReturnRate", value: in.AnnualReturnRate, min: -10, max: 20},
		{field: "annualAppreciationRate", value: in.AnnualAppreciationRate, min: -10, max: 20},
		{field: "pmiRate", value: in.PMIRate, min: 0, max: 2},
		{field: "extraPrincipalPayment", value: in.ExtraPrincipalPayment, min: 0, max: unbounded},
	}

	var errs []error
	for _, b := range bounds {
		if err := b.check(); err != nil {
			errs = append(errs, err)
		}
	}

	if !slices.Contains(AllowedLoanTerms, in.LoanTermYears) {
		errs = append(errs, fmt.Errorf("loanTermYears must be one of %v, got %d", AllowedLoanTerms, in.LoanTermYears))
	}
	if in.HorizonYears < 1 || in.HorizonYears > 30 {
		errs = append(errs, fmt.Errorf("horizonYears must be between 1 and 30, got %d", in.HorizonYears))
	}

	return errors.Join(errs...)
}
