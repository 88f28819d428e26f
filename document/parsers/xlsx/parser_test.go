package xlsx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	cells := map[string]interface{}{
		"A1": "Name", "B1": "Qty",
		"A2": "Widget", "B2": 3,
		"A3": "Gadget", "B3": 7,
	}
	for cell, value := range cells {
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	out := new(bytes.Buffer)
	if err := NewParser().Parse(context.Background(), bytes.NewReader(buf.Bytes()), out); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	for _, want := range []string{
		"[Sheet: Sheet1]",
		"| Name | Qty |",
		"| Widget | 3 |",
		"| Gadget | 7 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestParseInvalidWorkbook(t *testing.T) {
	out := new(bytes.Buffer)
	err := NewParser().Parse(context.Background(), bytes.NewReader([]byte("not a workbook")), out)
	if err == nil {
		t.Error("expected error for invalid workbook")
	}
}
