package goldbook

import (
	"fmt"

	"github.com/etnz/goldbook/date"
)

// ReportFilter selects the transactions of a report. A zero value selects
// everything.
type ReportFilter struct {
	Type TxType     // "" means all types
	Span date.Range // zero bounds are open
}

// Label names the filter the way report files are named, "ALL" or a type.
func (f ReportFilter) Label() string {
	if f.Type == "" {
		return "ALL"
	}
	return string(f.Type)
}

// Match reports whether tx is selected by the filter.
func (f ReportFilter) Match(tx Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	return f.Span.Contains(tx.Date)
}

// Report is a filtered list of transactions with their total.
type Report struct {
	Filter       ReportFilter
	Transactions []Transaction
	Total        Amount
}

// NewReport filters txs, keeping their order.
func NewReport(txs []Transaction, filter ReportFilter) *Report {
	r := &Report{Filter: filter}
	for _, tx := range txs {
		if !filter.Match(tx) {
			continue
		}
		r.Transactions = append(r.Transactions, tx)
		r.Total = r.Total.Add(tx.TotalAmount)
	}
	return r
}

// reportHeader are the CSV columns of a report.
var reportHeader = []string{"Type", "Date", "Party", "Weight", "Karat", "Total"}

// Table returns the CSV header and rows of the report.
func (r *Report) Table() (header []string, rows [][]string) {
	rows = make([][]string, 0, len(r.Transactions))
	for _, tx := range r.Transactions {
		rows = append(rows, []string{
			string(tx.Type),
			tx.Date.String(),
			tx.Party(),
			tx.Weight.String(),
			fmt.Sprint(int(tx.Karat)),
			tx.TotalAmount.String(),
		})
	}
	return reportHeader, rows
}

// FileName returns the name of the exported report file on a given day.
func (r *Report) FileName(on date.Date) string {
	return fmt.Sprintf("PyramidsGold_Report_%s_%s.csv", r.Filter.Label(), on)
}
