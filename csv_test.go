package goldbook

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	header := []string{"Type", "Party"}
	rows := [][]string{{"BUY", "Omar"}, {"SELL", `say "hi", Mona`}}
	if err := WriteCSV(&b, header, rows); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}
	want := "\uFEFFType,Party\n\"BUY\",\"Omar\"\n\"SELL\",\"say \"hi\", Mona\""
	if got := b.String(); got != want {
		t.Errorf("WriteCSV() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var b strings.Builder
	err := WriteCSV(&b, []string{"Type"}, nil)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("WriteCSV() error = %v, want %v", err, ErrNoData)
	}
	if b.Len() != 0 {
		t.Errorf("WriteCSV() wrote %q on empty data", b.String())
	}
}
