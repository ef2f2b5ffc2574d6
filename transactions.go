package goldbook

import (
	"fmt"

	"github.com/etnz/goldbook/date"
)

// TxType is the kind of a shop transaction.
type TxType string

const (
	Buy      TxType = "BUY"
	Sell     TxType = "SELL"
	Analysis TxType = "ANALYSIS"
	Expense  TxType = "EXPENSE"
)

// Permission is not a transaction but shares the id sequence scheme.
const PermissionKind = "PERMISSION"

// TxTypes lists the transaction types in display order.
var TxTypes = []TxType{Buy, Sell, Analysis, Expense}

// ParseTxType parses a transaction type, case sensitive.
func ParseTxType(s string) (TxType, error) {
	for _, t := range TxTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

var idPrefixes = map[string]string{
	string(Buy):      "B",
	string(Sell):     "S",
	string(Analysis): "A",
	string(Expense):  "E",
	PermissionKind:   "P",
}

// IDPrefix returns the id prefix of a sequence kind. Unknown kinds share "G".
func IDPrefix(kind string) string {
	if p, ok := idPrefixes[kind]; ok {
		return p
	}
	return "G"
}

// FormatID builds the id of the n-th element of a sequence kind, "B-1001".
func FormatID(kind string, n int) string { return fmt.Sprintf("%s-%d", IDPrefix(kind), n) }

// Transaction is a saved shop operation. It is immutable once saved.
type Transaction struct {
	ID           string            `json:"id"`
	Type         TxType            `json:"type" validate:"required,oneof=BUY SELL ANALYSIS EXPENSE"`
	Date         date.Date         `json:"date"`
	CustomerName string            `json:"customerName,omitempty"`
	Description  string            `json:"description,omitempty"`
	Weight       Amount            `json:"weight,omitzero"`
	Karat        Karat             `json:"karat,omitempty"`
	PricePerGram Amount            `json:"pricePerGram,omitzero"`
	TotalAmount  Amount            `json:"totalAmount"`
	TechnicianID string            `json:"technicianId,omitempty"`
	IsPaid       bool              `json:"isPaid"`
	Discount     Amount            `json:"discount,omitzero"`
	Details      map[string]string `json:"details,omitempty"`
}

// details keys
const (
	GoldTypeKey = "goldType"
	CastTypeKey = "type"
	CategoryKey = "category"
)

// Gold types recorded on trades, and cast types recorded on analyses.
const (
	GoldScrap = "scrap"
	GoldRaw   = "raw"
	CastCast  = "cast"
	CastRaw   = "raw"
)

// ExpenseCategories are the categories offered for expenses.
var ExpenseCategories = []string{"رواتب", "إيجار", "كهرباء", "ضيافة", "مصاريف أخرى"}

// NewTrade creates a BUY or SELL transaction and computes its total.
// The gold type defaults to scrap.
func NewTrade(typ TxType, on date.Date, customer string, weight Amount, karat Karat, pricePerGram, discount Amount, goldType string) Transaction {
	if goldType == "" {
		goldType = GoldScrap
	}
	return Transaction{
		Type:         typ,
		Date:         on,
		CustomerName: customer,
		Weight:       weight,
		Karat:        karat,
		PricePerGram: pricePerGram,
		Discount:     discount,
		TotalAmount:  TradeTotal(weight, pricePerGram, discount),
		IsPaid:       true,
		Details:      map[string]string{GoldTypeKey: goldType},
	}
}

// NewAnalysis creates an ANALYSIS transaction. Its total is the analysis fee.
func NewAnalysis(on date.Date, customer string, weight Amount, karat Karat, fee Amount, castType, technicianID string) Transaction {
	if castType == "" {
		castType = CastCast
	}
	return Transaction{
		Type:         Analysis,
		Date:         on,
		CustomerName: customer,
		Weight:       weight,
		Karat:        karat,
		PricePerGram: fee,
		TotalAmount:  fee,
		TechnicianID: technicianID,
		IsPaid:       true,
		Details:      map[string]string{CastTypeKey: castType},
	}
}

// NewExpense creates an EXPENSE transaction.
func NewExpense(on date.Date, amount Amount, description, category string) Transaction {
	return Transaction{
		Type:        Expense,
		Date:        on,
		Description: description,
		TotalAmount: amount,
		IsPaid:      true,
		Details:     map[string]string{CategoryKey: category},
	}
}

// TradeTotal returns weight × pricePerGram reduced by discount percent.
func TradeTotal(weight, pricePerGram, discount Amount) Amount {
	raw := weight.Mul(pricePerGram)
	return raw.Sub(raw.Mul(discount).Div(A(100)))
}

// tradeMargin is added to selling prices and removed from buying prices.
var tradeMargin = A(50)

// SuggestedPricePerGram returns the counter price of one gram of karat gold
// for a trade, derived from the 24 karat gram price.
func SuggestedPricePerGram(typ TxType, gold24 Amount, karat Karat) Amount {
	price := gold24.Div(A(1000)).Mul(A(int(karat)))
	switch typ {
	case Sell:
		price = price.Add(tradeMargin)
	case Buy:
		price = price.Sub(tradeMargin)
	}
	return price.Round(0)
}

// Party returns the name shown in reports for the transaction counterpart.
func (tx Transaction) Party() string {
	if tx.CustomerName != "" {
		return tx.CustomerName
	}
	if tx.Description != "" {
		return tx.Description
	}
	return "-"
}

// Detail returns a details value or "".
func (tx Transaction) Detail(key string) string { return tx.Details[key] }
