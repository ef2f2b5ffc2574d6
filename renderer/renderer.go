// Package renderer turns goldbook records into printable markdown and HTML
// documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/goldbook"
)

//go:embed templates/*.md
var templates embed.FS

// Title of a printed document, in English and Arabic, with its accent color.
type Title struct {
	En, Ar string
	Color  string
}

var titles = map[string]Title{
	string(goldbook.Buy):      {"PURCHASE INVOICE", "فاتورة شراء ذهب", "#1e3a8a"},
	string(goldbook.Sell):     {"TAX SALES INVOICE", "فاتورة بيع ضريبية", "#78350f"},
	string(goldbook.Analysis): {"ASSAY CERTIFICATE", "شهادة فحص وتحليل", "#581c87"},
	string(goldbook.Expense):  {"PAYMENT VOUCHER", "سند صرف نقدية", "#7f1d1d"},
	goldbook.PermissionKind:   {"SECURITY GATE PASS", "تصريح خروج / نقل", "#c2410c"},
	reportKind:                {"GENERAL REPORT", "تقرير عام", "#18181b"},
}

const reportKind = "REPORT"

func titleOf(kind string) Title {
	if t, ok := titles[kind]; ok {
		return t
	}
	return titles[reportKind]
}

// Document is a printable document: an invoice, a voucher, a gate pass or a
// report.
type Document struct {
	Kind       string
	Title      Title
	Company    goldbook.PrintSettings
	ID         string
	Date       string
	User       string
	PartyLabel string
	Party      string

	// Item table, absent from gate passes.
	Columns []string
	Rows    [][]string
	Total   string

	// Gate pass only.
	From, To string
	Items    string

	Currency  string
	Generated string
}

func newDocument(kind string, s goldbook.Settings, at time.Time) *Document {
	return &Document{
		Kind:       kind,
		Title:      titleOf(kind),
		Company:    s.Print,
		User:       "Admin",
		PartyLabel: "العميل / السيد",
		Currency:   s.Currency,
		Generated:  at.UTC().Format(time.RFC3339),
	}
}

// Markdown renders the document.
func (d *Document) Markdown() string {
	partials := map[string]string{
		"header": "templates/header.md",
		"footer": "templates/footer.md",
		"body":   "templates/items.md",
	}
	if d.Kind == goldbook.PermissionKind {
		partials["body"] = "templates/gate_pass.md"
	}
	return renderTemplate("document", "templates/document.md", partials, d)
}

// FileName returns the document file name with extension ext.
func (d *Document) FileName(ext string) string {
	id := d.ID
	if id == "" {
		id = "Doc"
	}
	return fmt.Sprintf("PyramidsGold_%s_%s.%s", d.Kind, id, ext)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
