package projection

import (
	"fmt"

	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
)

// Metrics summarizes a timeline. Break-even years are nil when no qualifying
// year exists within the horizon.
type Metrics struct {
	CashLossBreakEvenYear *int `json:"cashLossBreakEvenYear"`
	NetWorthBreakEvenYear *int `json:"netWorthBreakEvenYear"`

	NetWorthDelta5  float64 `json:"netWorthDelta5"`
	NetWorthDelta10 float64 `json:"netWorthDelta10"`
	NetWorthDelta15 float64 `json:"netWorthDelta15"`

	TotalUnrecoverableOwner5  float64 `json:"totalUnrecoverableOwner5"`
	TotalUnrecoverableOwner10 float64 `json:"totalUnrecoverableOwner10"`
	TotalUnrecoverableOwner15 float64 `json:"totalUnrecoverableOwner15"`

	TotalUnrecoverableRenter5  float64 `json:"totalUnrecoverableRenter5"`
	TotalUnrecoverableRenter10 float64 `json:"totalUnrecoverableRenter10"`
	TotalUnrecoverableRenter15 float64 `json:"totalUnrecoverableRenter15"`
}

// ComputeMetrics derives break-even years and milestone figures from a
// timeline built for in.
func ComputeMetrics(timeline Timeline, in scenario.Inputs) Metrics {
	var m Metrics
	if len(timeline) == 0 {
		return m
	}

	m.CashLossBreakEvenYear = cashLossBreakEven(timeline)
	m.NetWorthBreakEvenYear = netWorthBreakEven(timeline, in.HorizonYears)

	for _, year := range constants.MilestoneYears {
		point, ok := timeline.At(year * constants.MonthsPerYear)
		if !ok {
			continue
		}
		delta := point.OwnerNetWorth - point.RenterNetWorth
		switch year {
		case 5:
			m.NetWorthDelta5 = delta
			m.TotalUnrecoverableOwner5 = point.OwnerTotalUnrecoverable
			m.TotalUnrecoverableRenter5 = point.RenterTotalUnrecoverable
		case 10:
			m.NetWorthDelta10 = delta
			m.TotalUnrecoverableOwner10 = point.OwnerTotalUnrecoverable
			m.TotalUnrecoverableRenter10 = point.RenterTotalUnrecoverable
		case 15:
			m.NetWorthDelta15 = delta
			m.TotalUnrecoverableOwner15 = point.OwnerTotalUnrecoverable
			m.TotalUnrecoverableRenter15 = point.RenterTotalUnrecoverable
		}
	}

	return m
}

// cashLossBreakEven compares yearly averages of owner unrecoverable cost and
// rent, which smooths single-month noise such as the PMI cutoff. A trailing
// partial year is averaged over the months it has.
func cashLossBreakEven(timeline Timeline) *int {
	for start := 0; start < len(timeline); start += constants.MonthsPerYear {
		end := min(start+constants.MonthsPerYear, len(timeline))

		ownerSum, renterSum := 0.0, 0.0
		for _, point := range timeline[start:end] {
			ownerSum += point.OwnerUnrecoverableMonthly
			renterSum += point.RentMonthly
		}

		months := float64(end - start)
		if ownerSum/months <= renterSum/months {
			year := start/constants.MonthsPerYear + 1
			return &year
		}
	}
	return nil
}

func netWorthBreakEven(timeline Timeline, horizonYears int) *int {
	for year := 1; year <= horizonYears; year++ {
		point, ok := timeline.At(year * constants.MonthsPerYear)
		if !ok {
			break
		}
		if point.OwnerNetWorth >= point.RenterNetWorth {
			return &year
		}
	}
	return nil
}

// Snapshots returns the year-end points at each milestone year keyed as
// "year5", "year10" and "year15". A milestone beyond the horizon maps to nil.
func Snapshots(timeline Timeline) map[string]*TimelinePoint {
	snapshots := make(map[string]*TimelinePoint, len(constants.MilestoneYears))
	for _, year := range constants.MilestoneYears {
		key := fmt.Sprintf("year%d", year)
		point, ok := timeline.At(year * constants.MonthsPerYear)
		if !ok {
			snapshots[key] = nil
			continue
		}
		snapshots[key] = &point
	}
	return snapshots
}
