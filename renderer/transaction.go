package renderer

import (
	"fmt"
	"time"

	"github.com/etnz/goldbook"
)

const (
	colNumber = "#"
	colDesc   = "البيان / الوصف"
	colWeight = "الوزن"
	colKarat  = "العيار"
	colPrice  = "السعر / القيمة"
)

// Transaction returns the invoice or voucher of tx.
func Transaction(tx goldbook.Transaction, s goldbook.Settings, at time.Time) *Document {
	d := newDocument(string(tx.Type), s, at)
	d.ID = tx.ID
	d.Date = tx.Date.String()
	d.Party = tx.CustomerName
	if d.Party == "" {
		d.Party = "عميل نقدي"
	}
	total := s.Money(tx.TotalAmount).Whole()
	d.Total = total

	switch tx.Type {
	case goldbook.Analysis:
		d.Columns = []string{colNumber, colDesc, colWeight, colKarat}
		d.Rows = [][]string{{"01", describe(tx), weight(tx.Weight), karat(tx.Karat)}}
	case goldbook.Expense:
		d.Party = ""
		d.Columns = []string{colNumber, colDesc, colWeight, colPrice}
		d.Rows = [][]string{{"01", describe(tx), weight(tx.Weight), total}}
	default:
		d.Columns = []string{colNumber, colDesc, colWeight, colKarat, colPrice}
		d.Rows = [][]string{{"01", describe(tx), weight(tx.Weight), karat(tx.Karat), total}}
	}
	return d
}

// describe returns the item line of a transaction.
func describe(tx goldbook.Transaction) string {
	raw := tx.Detail(goldbook.GoldTypeKey) == goldbook.GoldRaw
	switch tx.Type {
	case goldbook.Buy:
		if raw {
			return "شراء ذهب خام (Raw Gold)"
		}
		return "شراء ذهب كسر (Scrap Gold)"
	case goldbook.Sell:
		if raw {
			return "بيع ذهب خام (Raw Gold)"
		}
		return "بيع ذهب كسر (Scrap Gold)"
	case goldbook.Analysis:
		desc := "خدمة فحص وتحليل فني"
		if t := tx.Detail(goldbook.CastTypeKey); t != "" {
			desc += " - النوع: " + t
		}
		return desc
	default:
		if tx.Description != "" {
			return tx.Description
		}
		return tx.Detail(goldbook.CategoryKey)
	}
}

// Permission returns the gate pass of p.
func Permission(p goldbook.Permission, s goldbook.Settings, at time.Time) *Document {
	d := newDocument(goldbook.PermissionKind, s, at)
	d.ID = p.ID
	d.Date = p.Date.String()
	d.User = "Security"
	d.PartyLabel = "الموظف / السائق"
	d.Party = p.EmployeeName
	d.From = "المقر الرئيسي - الإدارة"
	d.To = p.Destination
	d.Items = p.Items
	return d
}

// Report returns the printable list of the report transactions.
func Report(r *goldbook.Report, s goldbook.Settings, at time.Time) *Document {
	d := newDocument(reportKind, s, at)
	d.ID = r.Filter.Label()
	d.Date = at.Format(time.DateOnly)
	d.Columns = []string{colNumber, colDesc, colWeight, colKarat, colPrice}
	for i, tx := range r.Transactions {
		d.Rows = append(d.Rows, []string{
			fmt.Sprint(i + 1),
			reportLabel(tx),
			weight(tx.Weight),
			karat(tx.Karat),
			s.Money(tx.TotalAmount).Whole(),
		})
	}
	d.Total = s.Money(r.Total).Whole()
	return d
}

func reportLabel(tx goldbook.Transaction) string {
	switch {
	case tx.Type == goldbook.Buy:
		return "شراء"
	case tx.Type == goldbook.Sell:
		return "بيع"
	case tx.CustomerName != "":
		return tx.CustomerName
	default:
		return "عملية"
	}
}
