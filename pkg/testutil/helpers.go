// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
)

// BaseInputs returns the default scenario: 20% down on a 500000 home, so no
// PMI is charged.
func BaseInputs() scenario.Inputs {
	return scenario.Defaults()
}

// LowDownPaymentInputs returns the default scenario with 10% down, which
// charges PMI until the balance falls to 80% of the original loan.
func LowDownPaymentInputs() scenario.Inputs {
	in := scenario.Defaults()
	in.DownPaymentPercent = 10
	return in
}

// ExtraPrincipalInputs returns the default scenario over a 30 year horizon
// with the given extra principal paid every month.
func ExtraPrincipalInputs(extra float64) scenario.Inputs {
	in := scenario.Defaults()
	in.HorizonYears = 30
	in.ExtraPrincipalPayment = extra
	return in
}

// AssertClose fails the test when got and want differ by more than tolerance.
func AssertClose(t testing.TB, label string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %.4f, expected %.4f (tolerance %.4f)", label, got, want, tolerance)
	}
}
