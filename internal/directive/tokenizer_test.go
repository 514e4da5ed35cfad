package directive

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`play the "funky test" part`, []string{"play", "the", "funky test", "part"}},
		{"  \tknob  kn0\tsensitivity 0 5\r\n", []string{"knob", "kn0", "sensitivity", "0", "5"}},
		{`password "open sesame`, []string{"password", "open sesame"}},
		{`password ""`, []string{"password", ""}},
		{`a"b c"`, []string{`a"b`, `c"`}},
		{"", nil},
		{" \t ", nil},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestTokenizerRest(t *testing.T) {
	tok := NewTokenizer(`button play say "hello there"`, Delimiters)
	for _, want := range []string{"button", "play"} {
		if got, ok := tok.Next(); !ok || got != want {
			t.Fatalf("Next() = %q, %v; want %q", got, ok, want)
		}
	}
	if got := tok.Rest(); got != `say "hello there"` {
		t.Errorf("Rest() = %q", got)
	}

	tok = NewTokenizer("device", Delimiters)
	tok.Next()
	if got := tok.Rest(); got != "" {
		t.Errorf("Rest() at end of line = %q", got)
	}
	if _, ok := tok.Next(); ok {
		t.Error("Next() after the last token returned a token")
	}
}

func TestTokenizersAreIndependent(t *testing.T) {
	a := NewTokenizer("one two", Delimiters)
	b := NewTokenizer("three four", Delimiters)

	a1, _ := a.Next()
	b1, _ := b.Next()
	a2, _ := a.Next()
	b2, _ := b.Next()
	if a1 != "one" || a2 != "two" || b1 != "three" || b2 != "four" {
		t.Errorf("got %q %q %q %q", a1, a2, b1, b2)
	}
}
