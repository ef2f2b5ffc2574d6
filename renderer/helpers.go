package renderer

import (
	"bytes"
	"io"
	"strings"
	"text/template"

	"github.com/etnz/goldbook"
)

var funcs = template.FuncMap{
	"cell": cell,
}

// cell makes a value safe inside a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// weight formats grams with two decimals, or "-" when there is none.
func weight(w goldbook.Amount) string {
	if w.IsZero() {
		return "-"
	}
	return w.StringFixed(2)
}

func karat(k goldbook.Karat) string {
	if k <= 0 {
		return "-"
	}
	return goldbook.A(int(k)).String()
}

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}
