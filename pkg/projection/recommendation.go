package projection

// Recommendation labels.
const (
	RecommendBuy   = "Buy"
	RecommendRent  = "Rent"
	RecommendMixed = "Mixed"
)

// Recommendation is the plain-language verdict drawn from a timeline and its
// metrics.
type Recommendation struct {
	Label                          string   `json:"label"`
	Summary                        string   `json:"summary"`
	FinalNetWorthDelta             float64  `json:"finalNetWorthDelta"`
	HorizonYears                   int      `json:"horizonYears"`
	CashBreakEvenWithinHorizon     bool     `json:"cashBreakEvenWithinHorizon"`
	NetWorthBreakEvenWithinHorizon bool     `json:"netWorthBreakEvenWithinHorizon"`
	Suggestions                    []string `json:"suggestions"`
}

// OwnerAhead reports whether the owner finishes the horizon at or above the
// renter's net worth.
func (r Recommendation) OwnerAhead() bool {
	return r.FinalNetWorthDelta >= 0
}

// Recommend labels the scenario Buy, Rent or Mixed from the final net worth
// gap and whether each break-even lands inside the horizon.
func Recommend(timeline Timeline, metrics Metrics) Recommendation {
	var r Recommendation
	if len(timeline) > 0 {
		last := timeline[len(timeline)-1]
		r.HorizonYears = last.Year
		r.FinalNetWorthDelta = last.OwnerNetWorth - last.RenterNetWorth
	}

	r.CashBreakEvenWithinHorizon = withinHorizon(metrics.CashLossBreakEvenYear, r.HorizonYears)
	r.NetWorthBreakEvenWithinHorizon = withinHorizon(metrics.NetWorthBreakEvenYear, r.HorizonYears)

	switch {
	case r.FinalNetWorthDelta > 0 && r.NetWorthBreakEvenWithinHorizon && r.CashBreakEvenWithinHorizon:
		r.Label = RecommendBuy
		r.Summary = "Buying wins on net worth and cash flow within the analysis horizon."
	case r.FinalNetWorthDelta > 0 && r.NetWorthBreakEvenWithinHorizon:
		r.Label = RecommendBuy
		r.Summary = "Buying ends ahead on net worth, but cash flow stays higher for longer."
	case r.FinalNetWorthDelta < 0 && !r.NetWorthBreakEvenWithinHorizon:
		r.Label = RecommendRent
		r.Summary = "Renting preserves a higher net worth within the analysis horizon."
	default:
		r.Label = RecommendMixed
		r.Summary = "The outcome is mixed based on cash flow and net worth break-even timing."
	}

	if r.OwnerAhead() {
		r.Suggestions = []string{
			"Keep the horizon long enough to capture net worth break-even",
			"Watch interest rates and closing costs to protect the advantage",
		}
	} else {
		r.Suggestions = []string{
			"Increase down payment or lower the purchase price",
			"Seek a lower mortgage rate or reduce closing costs",
			"Extend the time horizon to capture appreciation",
		}
	}

	return r
}

func withinHorizon(year *int, horizonYears int) bool {
	return year != nil && *year <= horizonYears
}
