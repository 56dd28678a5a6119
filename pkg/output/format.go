// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/rent-vs-buy/internal/analysis"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/format"
	"github.com/iwvelando/rent-vs-buy/pkg/loans"
	"github.com/iwvelando/rent-vs-buy/pkg/projection"
	"github.com/shopspring/decimal"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, a *analysis.Analysis) error {
	var b strings.Builder

	b.WriteString(RenderTitle(fmt.Sprintf("Rent vs Buy: %d-year projection", a.Inputs.HorizonYears)))
	b.WriteString("\n\n")

	rec := a.Recommendation
	b.WriteString("  Recommendation: ")
	b.WriteString(RenderBadge(rec.Label))
	b.WriteString("\n  ")
	b.WriteString(rec.Summary)
	b.WriteString("\n")
	for _, s := range rec.Suggestions {
		b.WriteString("    - ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	m := a.Metrics
	b.WriteString(RenderTable(Table{
		Title:   "Key metrics",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Cash-flow break-even", format.Year(m.CashLossBreakEvenYear)},
			{"Net worth break-even", format.Year(m.NetWorthBreakEvenYear)},
			{"Final net worth gap", format.Currency(rec.FinalNetWorthDelta)},
			{"Net worth delta (5y)", format.Currency(m.NetWorthDelta5)},
			{"Net worth delta (10y)", format.Currency(m.NetWorthDelta10)},
			{"Net worth delta (15y)", format.Currency(m.NetWorthDelta15)},
			{"Owner unrecoverable (10y)", format.Currency(m.TotalUnrecoverableOwner10)},
			{"Renter unrecoverable (10y)", format.Currency(m.TotalUnrecoverableRenter10)},
		},
	}))
	b.WriteString("\n")

	ins := a.Insights
	b.WriteString(RenderTable(Table{
		Title:   "Cash needs",
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Monthly payment (first month)", format.Currency(ins.FirstMonth.Total)},
			{"  Mortgage", format.Currency(ins.FirstMonth.MortgagePayment)},
			{"  Property tax", format.Currency(ins.FirstMonth.PropertyTax)},
			{"  Insurance", format.Currency(ins.FirstMonth.Insurance)},
			{"  Maintenance", format.Currency(ins.FirstMonth.Maintenance)},
			{"  PMI", format.Currency(ins.FirstMonth.PMI)},
			{"Down payment", format.Currency(ins.DownPayment)},
			{"Closing costs", format.Currency(ins.ClosingCosts)},
			{"Upfront cash", format.Currency(ins.UpfrontCash)},
			{"Interest paid", format.Currency(ins.TotalInterestPaid)},
			{"Interest saved", format.Currency(ins.InterestSaved)},
			{"Loan paid off", monthOrNever(ins.PayoffMonth)},
			{"PMI removed", monthOrNever(ins.PMIDropMonth)},
		},
	}))
	b.WriteString("\n")

	rows := make([][]string, 0, a.Inputs.HorizonYears)
	for _, p := range a.Timeline {
		if p.Month%constants.MonthsPerYear != 0 {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			format.Currency(p.HomeValue),
			format.Currency(p.MortgageBalance),
			format.Currency(p.OwnerNetWorth),
			format.Currency(p.RenterNetWorth),
			format.Compact(p.OwnerNetWorth - p.RenterNetWorth),
		})
	}
	b.WriteString(RenderTable(Table{
		Title:   "Year-end net worth",
		Headers: []string{"Year", "Home value", "Mortgage", "Owner", "Renter", "Gap"},
		Rows:    rows,
	}))

	_, err := io.WriteString(w, b.String())
	return err
}

func monthOrNever(month int) string {
	if month == 0 {
		return "not within horizon"
	}
	return fmt.Sprintf("month %d (year %d)", month, (month+constants.MonthsPerYear-1)/constants.MonthsPerYear)
}

// TimelineHeader lists the CSV columns in timeline field order.
var TimelineHeader = []string{
	"month", "year",
	"ownerUnrecoverableMonthly", "mortgageInterest", "propertyTax", "insurance",
	"maintenance", "pmi", "mortgagePayment", "mortgagePrincipal", "mortgageBalance",
	"rentMonthly", "homeValue",
	"ownerNetWorth", "renterNetWorth", "renterInvestmentBalance", "renterMonthlyContribution",
	"ownerTotalUnrecoverable", "renterTotalUnrecoverable", "ownerTotalPrincipalPaid",
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func timelineRecord(p projection.TimelinePoint) []string {
	return []string{
		strconv.Itoa(p.Month), strconv.Itoa(p.Year),
		money(p.OwnerUnrecoverableMonthly), money(p.MortgageInterest), money(p.PropertyTax), money(p.Insurance),
		money(p.Maintenance), money(p.PMI), money(p.MortgagePayment), money(p.MortgagePrincipal), money(p.MortgageBalance),
		money(p.RentMonthly), money(p.HomeValue),
		money(p.OwnerNetWorth), money(p.RenterNetWorth), money(p.RenterInvestmentBalance), money(p.RenterMonthlyContribution),
		money(p.OwnerTotalUnrecoverable), money(p.RenterTotalUnrecoverable), money(p.OwnerTotalPrincipalPaid),
	}
}

// CsvFormat writes the timeline in comma-separated value format, one row per month.
func CsvFormat(w io.Writer, timeline projection.Timeline) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TimelineHeader); err != nil {
		return err
	}
	for _, p := range timeline {
		if err := cw.Write(timelineRecord(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the timeline CSV as a string.
func CsvString(timeline projection.Timeline) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, timeline); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat writes v as indented JSON.
func JSONFormat(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ScheduleFormat writes a static amortization schedule as a table or CSV.
func ScheduleFormat(w io.Writer, schedule loans.Schedule, outputFormat string) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"month", "payment", "principal", "interest", "balance"}); err != nil {
			return err
		}
		for _, e := range schedule {
			record := []string{strconv.Itoa(e.Month), money(e.Payment), money(e.Principal), money(e.Interest), money(e.Balance)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case constants.OutputFormatJSON:
		return JSONFormat(w, schedule)
	case constants.OutputFormatPretty:
		rows := make([][]string, 0, len(schedule))
		for _, e := range schedule {
			rows = append(rows, []string{
				strconv.Itoa(e.Month),
				format.Currency(e.Payment),
				format.Currency(e.Principal),
				format.Currency(e.Interest),
				format.Currency(e.Balance),
			})
		}
		_, err := io.WriteString(w, RenderTable(Table{
			Title:   "Amortization schedule",
			Headers: []string{"Month", "Payment", "Principal", "Interest", "Balance"},
			Rows:    rows,
		}))
		return err
	}
	return fmt.Errorf("unsupported output format %s", outputFormat)
}
