package document

import "testing"

func TestStripUnprintable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello world", want: "hello world"},
		{name: "control chars", input: "a\x00b\x1fc", want: "abc"},
		{name: "keeps spaces", input: "a b", want: "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripUnprintable(tt.input); got != tt.want {
				t.Errorf("StripUnprintable(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := EscapeMarkdown("a|b\nc"); got != `a\|b c` {
		t.Errorf("EscapeMarkdown = %q", got)
	}
}
