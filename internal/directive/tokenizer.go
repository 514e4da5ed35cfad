package directive

import "strings"

// Delimiters separate tokens on a directive line.
const Delimiters = " \t\r\n"

// Tokenizer splits one line into whitespace separated tokens. A token that
// starts with a double quote runs to the next double quote, delimiters
// included; the quotes are dropped. An unterminated quote runs to the end
// of the line.
type Tokenizer struct {
	line       string
	delimiters string
	pos        int
}

// NewTokenizer returns a tokenizer positioned at the start of line.
func NewTokenizer(line, delimiters string) *Tokenizer {
	return &Tokenizer{line: line, delimiters: delimiters}
}

// Next returns the next token. ok is false once only delimiters remain.
func (t *Tokenizer) Next() (token string, ok bool) {
	for t.pos < len(t.line) && strings.IndexByte(t.delimiters, t.line[t.pos]) >= 0 {
		t.pos++
	}
	if t.pos >= len(t.line) {
		return "", false
	}

	stop := t.delimiters
	if t.line[t.pos] == '"' {
		t.pos++
		stop = `"`
	}

	start := t.pos
	end := strings.IndexAny(t.line[start:], stop)
	if end < 0 {
		t.pos = len(t.line)
		return t.line[start:], true
	}
	t.pos = start + end + 1
	return t.line[start : start+end], true
}

// Rest returns the untokenized remainder of the line, starting after the
// character that terminated the last token.
func (t *Tokenizer) Rest() string {
	return t.line[t.pos:]
}

// Tokenize returns all tokens of line using the default delimiters.
func Tokenize(line string) []string {
	var tokens []string
	t := NewTokenizer(line, Delimiters)
	for tok, ok := t.Next(); ok; tok, ok = t.Next() {
		tokens = append(tokens, tok)
	}
	return tokens
}
