package goldbook

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/goldbook/date"
)

func TestValidate(t *testing.T) {
	on := date.New(2025, time.May, 4)
	testCases := []struct {
		name    string
		record  any
		wantErr string // substring, "" for valid
	}{
		{"valid sell", NewTrade(Sell, on, "Mona", A(5), K21, A(2763), A(0), ""), ""},
		{"missing customer", NewTrade(Buy, on, "", A(5), K21, A(2663), A(0), ""), "customerName"},
		{"zero weight", NewTrade(Buy, on, "Omar", A(0), K21, A(2663), A(0), ""), "weight"},
		{"bad karat", NewTrade(Buy, on, "Omar", A(1), Karat(1200), A(2663), A(0), ""), "karat"},
		{"bad discount", NewTrade(Sell, on, "Omar", A(1), K21, A(2663), A(120), ""), "discount"},
		{"missing date", NewTrade(Sell, date.Date{}, "Omar", A(1), K21, A(2663), A(0), ""), "date"},
		{"valid analysis", NewAnalysis(on, "Lab", A(3), K21, A(150), "", ""), ""},
		{"valid expense", NewExpense(on, A(10), "tea", "ضيافة"), ""},
		{"zero expense", NewExpense(on, A(0), "tea", "ضيافة"), "totalAmount"},
		{"unknown type", Transaction{Type: "GIFT", Date: on}, "Type"},
		{"valid employee", Employee{Name: "Ahmed", Code: "EMP001"}, ""},
		{"bad email", Employee{Name: "Ahmed", Code: "EMP001", Email: "nope"}, "Email"},
		{"negative capital", Partner{Name: "A", Capital: A(-1)}, "capital"},
		{"valid permission", Permission{EmployeeName: "Ahmed", Date: on, Destination: "bank", Items: "cash", Status: Pending}, ""},
		{"bad role", User{Username: "x", Password: "y", Role: "Root"}, "Role"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.record)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}
