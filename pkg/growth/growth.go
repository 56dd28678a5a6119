// Package growth projects home appreciation and rent growth over time.
package growth

import (
	"math"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
)

// CalculateHomeValue returns the value of a home after the given number of
// months of monthly-compounded appreciation. annualRate is a decimal.
func CalculateHomeValue(initialValue, annualRate float64, month int) float64 {
	if month <= 0 {
		return initialValue
	}
	monthlyRate := mathutil.EquivalentMonthlyRate(annualRate)
	return initialValue * math.Pow(1+monthlyRate, float64(month))
}

// GetRentAtMonth returns the rent due in the given month. Rent steps up once
// every twelve months; months 1..12 pay the initial rent.
func GetRentAtMonth(initialRent, growthRate float64, month int) float64 {
	if month <= 0 {
		return initialRent
	}
	year := (month - 1) / constants.MonthsPerYear
	return initialRent * math.Pow(1+growthRate, float64(year))
}

// HomeValuePath returns the home value for months 1..months.
func HomeValuePath(initialValue, annualRate float64, months int) []float64 {
	path := make([]float64, 0, max(months, 0))
	for month := 1; month <= months; month++ {
		path = append(path, CalculateHomeValue(initialValue, annualRate, month))
	}
	return path
}

// RentPath returns the rent due for months 1..months.
func RentPath(initialRent, growthRate float64, months int) []float64 {
	path := make([]float64, 0, max(months, 0))
	for month := 1; month <= months; month++ {
		path = append(path, GetRentAtMonth(initialRent, growthRate, month))
	}
	return path
}
