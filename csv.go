package goldbook

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const bom = "\uFEFF"

// WriteCSV writes a spreadsheet friendly CSV: a UTF-8 BOM, the header keys
// joined by commas, then one line per row with every value wrapped in double
// quotes. Values are not escaped. Lines are separated by "\n" and the last
// one has no terminator. An empty set of rows is ErrNoData.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(bom)
	bw.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		bw.WriteString("\n")
		for i, v := range row {
			if i > 0 {
				bw.WriteString(",")
			}
			bw.WriteString(`"` + v + `"`)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	return nil
}
