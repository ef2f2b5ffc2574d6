package goldbook

import "testing"

func TestDecodeSettings(t *testing.T) {
	stored := `{"priceSource":"MANUAL","goldPrice24":4000,"printSettings":{"companyName":"Nile Gold"},"googleDrive":{"clientId":"abc"}}`
	s, err := DecodeSettings([]byte(stored))
	if err != nil {
		t.Fatalf("DecodeSettings() failed: %v", err)
	}
	def := DefaultSettings()
	testCases := []struct {
		name      string
		got, want any
	}{
		{"source", s.PriceSource, Manual},
		{"gold24", s.GoldPrice24.String(), "4000"},
		{"gold21 default", s.GoldPrice21.String(), "2700"},
		{"currency default", s.Currency, "EGP"},
		{"company", s.Print.CompanyName, "Nile Gold"},
		{"paper default", s.Print.PaperSize, A5},
		{"footer default", s.Print.FooterText, def.Print.FooterText},
		{"hero default", s.Dashboard.HeroTitle, def.Dashboard.HeroTitle},
		{"client id", s.Drive.ClientID, "abc"},
	}
	for _, tc := range testCases {
		if tc.got != tc.want {
			t.Errorf("DecodeSettings() %s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestDecodeSettings_Invalid(t *testing.T) {
	s, err := DecodeSettings([]byte(`{"goldPrice24":`))
	if err == nil {
		t.Fatal("DecodeSettings() with truncated json succeeded")
	}
	if s.Currency != "EGP" {
		t.Errorf("DecodeSettings() did not fall back to defaults: %+v", s)
	}
}

func TestSettingsActive(t *testing.T) {
	live := &MarketData{Gold24: A(4100), Gold21: A(3587), Gold18: A(3075), USD: A(48), Source: "GoldAPI"}

	s := DefaultSettings()
	got := s.Active(live)
	if !got.GoldPrice24.Equal(A(4100)) || !got.ExchangeRate.Equal(A(48)) {
		t.Errorf("Active() on LIVE = %v/%v, want 4100/48", got.GoldPrice24, got.ExchangeRate)
	}

	s.PriceSource = Manual
	if got := s.Active(live); !got.GoldPrice24.Equal(A(3100)) {
		t.Errorf("Active() on MANUAL = %v, want 3100", got.GoldPrice24)
	}

	s.PriceSource = Live
	if got := s.Active(&MarketData{}); !got.GoldPrice24.Equal(A(3100)) {
		t.Errorf("Active() with no live price = %v, want 3100", got.GoldPrice24)
	}
}

func TestAdvice(t *testing.T) {
	testCases := []struct {
		live, manual Amount
		want         Trend
	}{
		{A(3200), A(3100), TrendSell},
		{A(3150), A(3100), TrendStable},
		{A(3050), A(3100), TrendStable},
		{A(3000), A(3100), TrendBuy},
	}
	for _, tc := range testCases {
		if got := Advice(tc.live, tc.manual); got != tc.want {
			t.Errorf("Advice(%v, %v) = %v, want %v", tc.live, tc.manual, got, tc.want)
		}
	}
}
