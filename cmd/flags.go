package cmd

import (
	"github.com/etnz/goldbook"
)

// amountValue is a flag.Value for decimal amounts.
type amountValue struct{ a *goldbook.Amount }

func (v amountValue) String() string {
	if v.a == nil {
		return "0"
	}
	return v.a.String()
}

func (v amountValue) Set(s string) error {
	a, err := goldbook.ParseAmount(s)
	if err != nil {
		return err
	}
	*v.a = a
	return nil
}
