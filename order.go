package goldbook

import (
	"fmt"

	"github.com/etnz/goldbook/date"
)

// Order is a transaction as entered at the counter, before its total is
// computed.
type Order struct {
	Type         TxType    `json:"type"`
	Date         date.Date `json:"date"`
	CustomerName string    `json:"customerName"`
	Description  string    `json:"description"`
	Weight       Amount    `json:"weight"`
	Karat        Karat     `json:"karat"`
	PricePerGram Amount    `json:"pricePerGram"` // BUY and SELL
	Discount     Amount    `json:"discount"`     // percent
	Fee          Amount    `json:"fee"`          // ANALYSIS
	Amount       Amount    `json:"amount"`       // EXPENSE
	GoldType     string    `json:"goldType"`
	CastType     string    `json:"castType"`
	Category     string    `json:"category"`
	TechnicianID string    `json:"technicianId"`
}

// Transaction builds the transaction of o. A trade without a price per gram
// gets the suggested price for gold24. A zero date means today.
func (o Order) Transaction(gold24 Amount) (Transaction, error) {
	on := o.Date
	if on.IsZero() {
		on = date.Today()
	}
	switch o.Type {
	case Buy, Sell:
		ppg := o.PricePerGram
		if ppg.IsZero() {
			ppg = SuggestedPricePerGram(o.Type, gold24, o.Karat)
		}
		return NewTrade(o.Type, on, o.CustomerName, o.Weight, o.Karat, ppg, o.Discount, o.GoldType), nil
	case Analysis:
		return NewAnalysis(on, o.CustomerName, o.Weight, o.Karat, o.Fee, o.CastType, o.TechnicianID), nil
	case Expense:
		return NewExpense(on, o.Amount, o.Description, o.Category), nil
	default:
		return Transaction{}, fmt.Errorf("%w transaction type %q", ErrInvalid, o.Type)
	}
}
