package goldbook

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/etnz/goldbook/date"
)

func TestIDPrefix(t *testing.T) {
	testCases := []struct {
		kind string
		want string
	}{
		{"BUY", "B"},
		{"SELL", "S"},
		{"ANALYSIS", "A"},
		{"EXPENSE", "E"},
		{"PERMISSION", "P"},
		{"SOMETHING", "G"},
		{"", "G"},
	}
	for _, tc := range testCases {
		if got := IDPrefix(tc.kind); got != tc.want {
			t.Errorf("IDPrefix(%q) = %q, want %q", tc.kind, got, tc.want)
		}
	}
	if got, want := FormatID("BUY", 1001), "B-1001"; got != want {
		t.Errorf("FormatID(BUY, 1001) = %q, want %q", got, want)
	}
}

func TestSuggestedPricePerGram(t *testing.T) {
	testCases := []struct {
		name   string
		typ    TxType
		gold24 Amount
		karat  Karat
		want   Amount
	}{
		{"sell 21", Sell, A(3100), K21, A(2763)}, // 2712.5 rounds up, +50
		{"buy 21", Buy, A(3100), K21, A(2663)},   // 2712.5 - 50
		{"sell 18", Sell, A(3100), K18, A(2375)}, // 2325 + 50
		{"buy 24", Buy, A(3100), K24, A(3050)},   // 3100 - 50
		{"other type", Analysis, A(3100), K21, A(2713)},
		{"odd karat", Sell, A(4000), Karat(583), A(2382)}, // 2332 + 50
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SuggestedPricePerGram(tc.typ, tc.gold24, tc.karat)
			if !got.Equal(tc.want) {
				t.Errorf("SuggestedPricePerGram(%v, %v, %v) = %v, want %v", tc.typ, tc.gold24, tc.karat, got, tc.want)
			}
		})
	}
}

func TestTradeTotal(t *testing.T) {
	testCases := []struct {
		weight, price, discount Amount
		want                    Amount
	}{
		{A(10), A(2763), A(0), A(27630)},
		{A(10), A(2000), A(5), A(19000)},
		{mustAmount("2.5"), A(1000), mustAmount("10"), A(2250)},
		{A(0), A(1000), A(0), A(0)},
	}
	for _, tc := range testCases {
		got := TradeTotal(tc.weight, tc.price, tc.discount)
		if !got.Equal(tc.want) {
			t.Errorf("TradeTotal(%v, %v, %v) = %v, want %v", tc.weight, tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestNewTrade(t *testing.T) {
	on := date.New(2025, time.March, 1)
	tx := NewTrade(Sell, on, "Mona", A(5), K21, A(2763), A(0), "")
	if !tx.TotalAmount.Equal(A(13815)) {
		t.Errorf("NewTrade().TotalAmount = %v, want 13815", tx.TotalAmount)
	}
	if got := tx.Detail(GoldTypeKey); got != GoldScrap {
		t.Errorf("NewTrade() gold type = %q, want %q", got, GoldScrap)
	}
	if !tx.IsPaid {
		t.Errorf("NewTrade() is not paid")
	}
}

func TestTransactionJSON(t *testing.T) {
	// a record as saved by the browser application.
	const stored = `{"id":"S-1001","type":"SELL","date":"2025-03-01","customerName":"Mona","weight":5,"karat":875,"pricePerGram":2763,"discount":0,"isPaid":true,"details":{"goldType":"raw"},"totalAmount":13815}`
	var tx Transaction
	if err := json.Unmarshal([]byte(stored), &tx); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if tx.ID != "S-1001" || tx.Type != Sell || tx.Karat != K21 || tx.Detail(GoldTypeKey) != GoldRaw {
		t.Errorf("decoded %+v", tx)
	}
	if !tx.TotalAmount.Equal(A(13815)) {
		t.Errorf("TotalAmount = %v, want 13815", tx.TotalAmount)
	}

	got, err := json.Marshal(NewExpense(date.New(2025, time.March, 2), A(500), "tea", "ضيافة"))
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	want := `{"id":"","type":"EXPENSE","date":"2025-03-02","description":"tea","totalAmount":500,"isPaid":true,"details":{"category":"ضيافة"}}`
	if string(got) != want {
		t.Errorf("json.Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestParty(t *testing.T) {
	testCases := []struct {
		tx   Transaction
		want string
	}{
		{Transaction{CustomerName: "Mona", Description: "x"}, "Mona"},
		{Transaction{Description: "rent"}, "rent"},
		{Transaction{}, "-"},
	}
	for _, tc := range testCases {
		if got := tc.tx.Party(); got != tc.want {
			t.Errorf("Party() = %q, want %q", got, tc.want)
		}
	}
}

func TestOrderTransaction(t *testing.T) {
	on := date.New(2025, 5, 4)
	tests := []struct {
		name      string
		order     Order
		wantPPG   string
		wantTotal string
	}{
		{"suggested sell", Order{Type: Sell, Date: on, Weight: A(2), Karat: K21}, "2763", "5526"},
		{"suggested buy", Order{Type: Buy, Date: on, Weight: A(2), Karat: K21}, "2663", "5326"},
		{"explicit price", Order{Type: Buy, Date: on, Weight: A(2), Karat: K21, PricePerGram: A(2600), Discount: A(10)}, "2600", "4680"},
		{"analysis fee", Order{Type: Analysis, Date: on, Weight: A(3), Karat: K18, Fee: A(150)}, "150", "150"},
		{"expense", Order{Type: Expense, Date: on, Amount: A(900), Description: "rent"}, "0", "900"},
	}
	for _, tt := range tests {
		tx, err := tt.order.Transaction(A(3100))
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := tx.PricePerGram.String(); got != tt.wantPPG {
			t.Errorf("%s: price per gram = %s, want %s", tt.name, got, tt.wantPPG)
		}
		if got := tx.TotalAmount.String(); got != tt.wantTotal {
			t.Errorf("%s: total = %s, want %s", tt.name, got, tt.wantTotal)
		}
	}

	if _, err := (Order{Type: "GIFT"}).Transaction(A(3100)); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown type error = %v, want ErrInvalid", err)
	}
	tx, _ := Order{Type: Expense, Amount: A(1)}.Transaction(A(3100))
	if tx.Date.IsZero() {
		t.Error("zero order date should default to today")
	}
}
