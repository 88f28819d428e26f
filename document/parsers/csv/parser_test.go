package csv

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func parse(t *testing.T, input string) string {
	t.Helper()
	out := new(bytes.Buffer)
	if err := new(Parser).Parse(context.Background(), bytes.NewReader([]byte(input)), out); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestParse(t *testing.T) {
	got := parse(t, "name,age,score\nalice,30,9.5\nbob,25,8\n")

	for _, want := range []string{
		"[CSV Data]",
		"| name | age | score |",
		"| alice | 30 | 9.5 |",
		"| bob | 25 | 8 |",
		"[Statistics]",
		"age: count=2 mean=27.5 min=25 max=30",
		"score: count=2 mean=8.75 min=8 max=9.5",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "name: count") {
		t.Error("non-numeric column should have no statistics")
	}
}

func TestParseNoNumericColumns(t *testing.T) {
	got := parse(t, "a,b\nx,y\n")
	if strings.Contains(got, "[Statistics]") {
		t.Errorf("unexpected statistics section:\n%s", got)
	}
}

func TestParseEmpty(t *testing.T) {
	if got := parse(t, ""); got != "" {
		t.Errorf("empty input should produce no text, got %q", got)
	}
}

func TestParseEscapesPipes(t *testing.T) {
	got := parse(t, "col\na|b\n")
	if !strings.Contains(got, `a\|b`) {
		t.Errorf("pipe not escaped:\n%s", got)
	}
}

func TestParseRaggedRows(t *testing.T) {
	got := parse(t, "a,b\n1,2\n3\n")
	if !strings.Contains(got, "| 3 |") {
		t.Errorf("short row dropped:\n%s", got)
	}
}
