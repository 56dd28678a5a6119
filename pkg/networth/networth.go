// Package networth computes owner equity and renter investment balances.
package networth

import "github.com/iwvelando/rent-vs-buy/pkg/mathutil"

// CalculateOwnerNetWorth returns the owner's equity after a hypothetical sale:
// home value net of the selling cost fraction, minus the remaining mortgage.
func CalculateOwnerNetWorth(homeValue, sellingCostRate, mortgageBalance float64) float64 {
	return homeValue*(1-sellingCostRate) - mortgageBalance
}

// CalculateRenterNetWorth returns an investment balance after the given number
// of months. Each month the balance grows first and then receives the
// contribution. annualReturnRate is a decimal.
func CalculateRenterNetWorth(initialDeposit, monthlyContribution, annualReturnRate float64, month int) float64 {
	if month <= 0 {
		return initialDeposit
	}

	monthlyRate := mathutil.EquivalentMonthlyRate(annualReturnRate)
	balance := initialDeposit
	for m := 1; m <= month; m++ {
		balance = GrowAndContribute(balance, monthlyRate, monthlyContribution)
	}
	return balance
}

// GrowAndContribute advances an investment balance by one month.
func GrowAndContribute(balance, monthlyRate, contribution float64) float64 {
	return balance*(1+monthlyRate) + contribution
}

// RenterNetWorthPath returns the renter balance for months 1..months.
func RenterNetWorthPath(initialDeposit, monthlyContribution, annualReturnRate float64, months int) []float64 {
	if months <= 0 {
		return []float64{}
	}

	monthlyRate := mathutil.EquivalentMonthlyRate(annualReturnRate)
	path := make([]float64, 0, months)
	balance := initialDeposit
	for m := 1; m <= months; m++ {
		balance = GrowAndContribute(balance, monthlyRate, monthlyContribution)
		path = append(path, balance)
	}
	return path
}
