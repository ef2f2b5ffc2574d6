package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/etnz/goldbook"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// pageCSS sets the page size of each paper format.
var pageCSS = map[goldbook.PaperSize]string{
	goldbook.A4:        "@page { size: A4; margin: 0; } .paper { width: 210mm; min-height: 297mm; font-size: 14px; }",
	goldbook.A5:        "@page { size: A5; margin: 0; } .paper { width: 148mm; min-height: 210mm; font-size: 12px; }",
	goldbook.Paper1015: "@page { size: 100mm 150mm; margin: 0; } .paper { width: 100mm; min-height: 150mm; font-size: 11px; }",
	goldbook.Receipt:   "@page { size: 80mm auto; margin: 0; } .paper { width: 80mm; font-size: 10px; }",
}

// PageCSS returns the page rules of paper. No paper size means A5, an
// unknown one A4.
func PageCSS(paper goldbook.PaperSize) string {
	if paper == "" {
		paper = goldbook.A5
	}
	if css, ok := pageCSS[paper]; ok {
		return css
	}
	return pageCSS[goldbook.A4]
}

const baseCSS = `
body { margin: 0; font-family: sans-serif; color: %s; }
.paper { margin: 0 auto; padding: 8mm; box-sizing: border-box; }
table { width: 100%%; border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid %s; padding: 4px 8px; }
h1, h2 { color: %s; }
.strip { height: 8px; }
`

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<div class="paper">
{{.Body}}
</div>
<div class="strip" style="background-color: {{.Accent}}"></div>
</body>
</html>
`))

// HTML renders md as a standalone printable page laid out for the paper size
// of p.
func HTML(title, md string, p goldbook.PrintSettings, accent string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("cannot convert markdown: %w", err)
	}
	css := PageCSS(p.PaperSize) + fmt.Sprintf(baseCSS,
		orDefault(p.DataTextColor, "#000000"),
		orDefault(p.BorderColor, "#000000"),
		orDefault(p.HeaderTextColor, "#000000"),
	)
	if accent == "" {
		accent = orDefault(p.PrimaryColor, "#000000")
	}
	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title  string
		CSS    template.CSS
		Body   template.HTML
		Accent template.CSS
	}{title, template.CSS(css), template.HTML(body.String()), template.CSS(accent)})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// HTML renders the document as a printable page.
func (d *Document) HTML() (string, error) {
	return HTML(d.Title.En+"_"+d.ID, d.Markdown(), d.Company, d.Title.Color)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
