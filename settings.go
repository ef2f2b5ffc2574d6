package goldbook

import (
	"encoding/json"
	"fmt"
)

// PriceSource selects where the counter prices come from.
type PriceSource string

const (
	Manual PriceSource = "MANUAL"
	Live   PriceSource = "LIVE"
)

// PaperSize of printed documents. Paper1015 is a 10cm × 15cm label.
type PaperSize string

const (
	A4        PaperSize = "A4"
	A5        PaperSize = "A5"
	Receipt   PaperSize = "RECEIPT"
	Paper1015 PaperSize = "1015"
)

// PrintSettings hold the company header and layout of printed documents.
type PrintSettings struct {
	CompanyName        string    `json:"companyName"`
	CompanyAddress     string    `json:"companyAddress"`
	ContactNumber      string    `json:"contactNumber"`
	TaxNumber          string    `json:"taxNumber"`
	CommercialRegister string    `json:"commercialRegister"`
	PrimaryColor       string    `json:"primaryColor"`
	DataTextColor      string    `json:"dataTextColor,omitempty"`
	HeaderTextColor    string    `json:"headerTextColor,omitempty"`
	SubHeaderTextColor string    `json:"subHeaderTextColor,omitempty"`
	LabelTextColor     string    `json:"labelTextColor,omitempty"`
	BorderColor        string    `json:"borderColor,omitempty"`
	FooterText         string    `json:"footerText"`
	LogoURL            string    `json:"logoUrl,omitempty"`
	PaperSize          PaperSize `json:"paperSize,omitempty"`
}

type DashboardSettings struct {
	HeroTitle    string `json:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle"`
	HeroImage    string `json:"heroImage"`
}

// DriveSettings hold the Google Drive credentials and the last backup time.
type DriveSettings struct {
	ClientID   string `json:"clientId"`
	APIKey     string `json:"apiKey"`
	LastBackup string `json:"lastBackup,omitempty"`
}

// Settings is the global singleton configuring the shop. It is saved by full
// replacement.
type Settings struct {
	PriceSource  PriceSource       `json:"priceSource"`
	GoldPrice24  Amount            `json:"goldPrice24"`
	GoldPrice21  Amount            `json:"goldPrice21"`
	GoldPrice18  Amount            `json:"goldPrice18"`
	ExchangeRate Amount            `json:"exchangeRate,omitzero"`
	TaxRate      Amount            `json:"taxRate"`
	Currency     string            `json:"currency"`
	Print        PrintSettings     `json:"printSettings"`
	Dashboard    DashboardSettings `json:"dashboard"`
	Drive        DriveSettings     `json:"googleDrive"`
}

// DefaultSettings returns the settings of a fresh shop.
func DefaultSettings() Settings {
	return Settings{
		PriceSource:  Live,
		GoldPrice24:  A(3100),
		GoldPrice21:  A(2700),
		GoldPrice18:  A(2300),
		ExchangeRate: mustAmount("50.5"),
		TaxRate:      A(0),
		Currency:     "EGP",
		Print: PrintSettings{
			CompanyName:        "بيراميدز جولد",
			CompanyAddress:     "القاهرة، الصاغة، ممر 3",
			ContactNumber:      "010-0000-0000",
			TaxNumber:          "987-654",
			CommercialRegister: "123456",
			PrimaryColor:       "#000000",
			DataTextColor:      "#000000",
			HeaderTextColor:    "#000000",
			SubHeaderTextColor: "#000000",
			LabelTextColor:     "#000000",
			BorderColor:        "#000000",
			FooterText:         "تم استخراج هذا المستند إلكترونياً من نظام بيراميدز جولد",
			PaperSize:          A5,
		},
		Dashboard: DashboardSettings{
			HeroTitle:    "بيراميدز جولد",
			HeroSubtitle: "الحل المتكامل لإدارة عمليات التحليل، البيع، والشراء في أسواق الذهب والمعادن الثمينة.",
		},
	}
}

// DecodeSettings decodes stored settings over the defaults. Nested groups
// are merged field by field, so a stored printSettings with only a company
// name keeps every other default.
func DecodeSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("cannot decode settings: %w", err)
	}
	return s, nil
}

// Active returns the settings the counter works with: when the source is
// LIVE and live carries a usable price, its gram prices and exchange rate
// replace the manual ones.
func (s Settings) Active(live *MarketData) Settings {
	if s.PriceSource != Live || live == nil || !live.Valid() {
		return s
	}
	s.GoldPrice24, s.GoldPrice21, s.GoldPrice18 = live.Gold24, live.Gold21, live.Gold18
	if live.USD.IsPositive() {
		s.ExchangeRate = live.USD
	}
	return s
}

// Money returns a in the shop currency.
func (s Settings) Money(a Amount) Money { return MA(a, s.Currency) }

// Trend is the advice derived from the gap between live and manual prices.
type Trend string

const (
	TrendSell   Trend = "SELL"
	TrendBuy    Trend = "BUY"
	TrendStable Trend = "STABLE"
)

var adviceThreshold = A(50)

// Advice compares the live 24 karat price to the manual one. A live price
// more than 50 above suggests selling, more than 50 below suggests buying.
func Advice(live, manual Amount) Trend {
	diff := live.Sub(manual)
	switch {
	case diff.GreaterThan(adviceThreshold):
		return TrendSell
	case diff.LessThan(adviceThreshold.Neg()):
		return TrendBuy
	default:
		return TrendStable
	}
}
