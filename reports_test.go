package goldbook

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/goldbook/date"
)

func TestNewReport(t *testing.T) {
	txs := sampleTransactions()
	txs = append(txs, NewExpense(date.New(2025, time.June, 1), A(300), "power", "كهرباء"))

	testCases := []struct {
		name   string
		filter ReportFilter
		count  int
		total  Amount
	}{
		{"all", ReportFilter{}, 5, A(58300)},
		{"expenses", ReportFilter{Type: Expense}, 2, A(2300)},
		{"may expenses", ReportFilter{Type: Expense, Span: date.NewRange(date.New(2025, time.May, 10), date.Monthly)}, 1, A(2000)},
		{"june", ReportFilter{Span: date.Range{From: date.New(2025, time.June, 1)}}, 1, A(300)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReport(txs, tc.filter)
			if len(r.Transactions) != tc.count {
				t.Errorf("NewReport() kept %d transactions, want %d", len(r.Transactions), tc.count)
			}
			if !r.Total.Equal(tc.total) {
				t.Errorf("NewReport() total = %v, want %v", r.Total, tc.total)
			}
		})
	}
}

func TestReportCSV(t *testing.T) {
	r := NewReport(sampleTransactions(), ReportFilter{Type: Expense})
	header, rows := r.Table()
	var b strings.Builder
	if err := WriteCSV(&b, header, rows); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}
	want := "\uFEFFType,Date,Party,Weight,Karat,Total\n\"EXPENSE\",\"2025-05-04\",\"rent\",\"0\",\"0\",\"2000\""
	if got := b.String(); got != want {
		t.Errorf("report csv =\n%q\nwant\n%q", got, want)
	}
	if got, want := r.FileName(date.New(2025, time.May, 6)), "PyramidsGold_Report_EXPENSE_2025-05-06.csv"; got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}
