package goldbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(transactionRules, Transaction{})
	v.RegisterStructValidation(partnerRules, Partner{})
	v.RegisterStructValidation(permissionRules, Permission{})
	return v
}

// transactionRules are the form level rules of each transaction type.
func transactionRules(sl validator.StructLevel) {
	tx := sl.Current().Interface().(Transaction)
	if tx.Date.IsZero() {
		sl.ReportError(tx.Date, "date", "Date", "required", "")
	}
	switch tx.Type {
	case Buy, Sell:
		if tx.CustomerName == "" {
			sl.ReportError(tx.CustomerName, "customerName", "CustomerName", "required", "")
		}
		if !tx.Weight.IsPositive() {
			sl.ReportError(tx.Weight, "weight", "Weight", "gt", "0")
		}
		if !tx.Karat.Valid() {
			sl.ReportError(tx.Karat, "karat", "Karat", "range", "1-1000")
		}
		if tx.PricePerGram.IsNegative() {
			sl.ReportError(tx.PricePerGram, "pricePerGram", "PricePerGram", "gte", "0")
		}
		if tx.Discount.IsNegative() || tx.Discount.GreaterThan(A(100)) {
			sl.ReportError(tx.Discount, "discount", "Discount", "range", "0-100")
		}
	case Analysis:
		if tx.CustomerName == "" {
			sl.ReportError(tx.CustomerName, "customerName", "CustomerName", "required", "")
		}
		if tx.TotalAmount.IsNegative() {
			sl.ReportError(tx.TotalAmount, "totalAmount", "TotalAmount", "gte", "0")
		}
	case Expense:
		if !tx.TotalAmount.IsPositive() {
			sl.ReportError(tx.TotalAmount, "totalAmount", "TotalAmount", "gt", "0")
		}
		if tx.Description == "" {
			sl.ReportError(tx.Description, "description", "Description", "required", "")
		}
	}
}

func partnerRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Partner)
	if p.Capital.IsNegative() {
		sl.ReportError(p.Capital, "capital", "Capital", "gte", "0")
	}
}

func permissionRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(Permission)
	if p.Date.IsZero() {
		sl.ReportError(p.Date, "date", "Date", "required", "")
	}
}

// Validate checks the form level rules of a record (transaction, employee,
// partner, permission or user) and returns all failures in a single error.
func Validate(record any) error {
	err := validate.Struct(record)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += " " + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w %T: %s", ErrInvalid, record, strings.Join(msgs, ", "))
}
