package tokens

import (
	"errors"
	"testing"
)

func TestWordCounter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "single word", input: "alpha", want: 1},
		{name: "words and spaces", input: "alpha beta gamma", want: 5},
	}

	wc := WordCounter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wc.Count(tt.input); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestForModelWords(t *testing.T) {
	c, err := ForModel(ModelWords)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(WordCounter); !ok {
		t.Errorf("expected WordCounter, got %T", c)
	}
}

func TestForModelUnknown(t *testing.T) {
	if _, err := ForModel("definitely-not-a-model"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestNewTikTokenCounterUnknownEncoding(t *testing.T) {
	_, err := NewTikTokenCounter("no-such-encoding")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Unwrap(err) == nil {
		t.Error("expected wrapped cause")
	}
}
