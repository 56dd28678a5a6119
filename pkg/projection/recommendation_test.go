package projection

import (
	"strings"
	"testing"

	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
	"github.com/iwvelando/rent-vs-buy/pkg/testutil"
)

func finalPoint(years int, owner, renter float64) Timeline {
	return syntheticTimeline(years*12, func(month int, p *TimelinePoint) {
		p.OwnerNetWorth = owner
		p.RenterNetWorth = renter
	})
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name            string
		timeline        Timeline
		metrics         Metrics
		expectLabel     string
		summaryContains string
		suggestions     int
	}{
		{
			name:            "buy on both measures",
			timeline:        finalPoint(10, 200000, 100000),
			metrics:         Metrics{CashLossBreakEvenYear: intPtr(3), NetWorthBreakEvenYear: intPtr(5)},
			expectLabel:     RecommendBuy,
			summaryContains: "net worth and cash flow",
			suggestions:     2,
		},
		{
			name:            "buy on net worth only",
			timeline:        finalPoint(10, 200000, 100000),
			metrics:         Metrics{NetWorthBreakEvenYear: intPtr(5)},
			expectLabel:     RecommendBuy,
			summaryContains: "cash flow stays higher",
			suggestions:     2,
		},
		{
			name:            "rent",
			timeline:        finalPoint(10, 100000, 200000),
			metrics:         Metrics{CashLossBreakEvenYear: intPtr(4)},
			expectLabel:     RecommendRent,
			summaryContains: "Renting preserves",
			suggestions:     3,
		},
		{
			name:            "renter ahead after an early owner lead",
			timeline:        finalPoint(10, 100000, 200000),
			metrics:         Metrics{NetWorthBreakEvenYear: intPtr(2)},
			expectLabel:     RecommendMixed,
			summaryContains: "mixed",
			suggestions:     3,
		},
		{
			name:            "break-even past the horizon",
			timeline:        finalPoint(10, 200000, 100000),
			metrics:         Metrics{CashLossBreakEvenYear: intPtr(2), NetWorthBreakEvenYear: intPtr(12)},
			expectLabel:     RecommendMixed,
			summaryContains: "mixed",
			suggestions:     2,
		},
		{
			name:            "dead even",
			timeline:        finalPoint(5, 150000, 150000),
			metrics:         Metrics{},
			expectLabel:     RecommendMixed,
			summaryContains: "mixed",
			suggestions:     2,
		},
		{
			name:            "empty timeline",
			timeline:        Timeline{},
			metrics:         Metrics{},
			expectLabel:     RecommendMixed,
			summaryContains: "mixed",
			suggestions:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recommend(tt.timeline, tt.metrics)
			if r.Label != tt.expectLabel {
				t.Errorf("label = %s, expected %s", r.Label, tt.expectLabel)
			}
			if !strings.Contains(r.Summary, tt.summaryContains) {
				t.Errorf("summary %q does not contain %q", r.Summary, tt.summaryContains)
			}
			if len(r.Suggestions) != tt.suggestions {
				t.Errorf("got %d suggestions, expected %d", len(r.Suggestions), tt.suggestions)
			}
		})
	}
}

func TestRecommendFromScenario(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(in *scenario.Inputs)
		expectLabel string
	}{
		{name: "default scenario favors renting", mutate: func(in *scenario.Inputs) {}, expectLabel: RecommendRent},
		{
			name: "expensive rent and strong appreciation favor buying",
			mutate: func(in *scenario.Inputs) {
				in.CurrentRent = 6000
				in.AnnualAppreciationRate = 5
				in.AnnualReturnRate = 2
			},
			expectLabel: RecommendBuy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testutil.BaseInputs()
			tt.mutate(&in)

			timeline := BuildTimeline(in)
			r := Recommend(timeline, ComputeMetrics(timeline, in))
			if r.Label != tt.expectLabel {
				t.Errorf("label = %s (%s), expected %s", r.Label, r.Summary, tt.expectLabel)
			}
			if r.HorizonYears != in.HorizonYears {
				t.Errorf("horizon = %d, expected %d", r.HorizonYears, in.HorizonYears)
			}
		})
	}
}
