package pystyle

import "strings"

// line is one physical source line plus the lexical state the checker needs.
type line struct {
	num       int
	text      string
	code      string // text with string contents masked and the comment cut off
	comment   string
	commentAt int  // byte offset of the comment, -1 if none
	continued bool // starts inside brackets, after a backslash, or inside a string
	inString  bool // starts inside a triple-quoted string
}

// splitSource splits src into physical lines without their terminators.
func splitSource(src string) (lines []string, finalNewline bool) {
	if src == "" {
		return nil, false
	}
	finalNewline = strings.HasSuffix(src, "\n")
	src = strings.TrimSuffix(src, "\n")
	lines = strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, finalNewline
}

// scan tracks strings, comments, and bracket depth across lines. Masked
// characters become 'x' so offsets in code still line up with text.
func scan(texts []string) []line {
	var (
		depth     int
		triple    string
		backslash bool
	)

	out := make([]line, len(texts))
	for i, text := range texts {
		l := line{
			num:       i + 1,
			text:      text,
			commentAt: -1,
			inString:  triple != "",
			continued: depth > 0 || backslash || triple != "",
		}

		code := []byte(text)
		var quote byte
		for j := 0; j < len(text); j++ {
			ch := text[j]
			switch {
			case triple != "":
				if strings.HasPrefix(text[j:], triple) {
					j += 2
					triple = ""
					continue
				}
				code[j] = 'x'
				if ch == '\\' && j+1 < len(text) {
					j++
					code[j] = 'x'
				}
			case quote != 0:
				if ch == quote {
					quote = 0
					continue
				}
				code[j] = 'x'
				if ch == '\\' && j+1 < len(text) {
					j++
					code[j] = 'x'
				}
			case ch == '#':
				l.commentAt = j
				l.comment = text[j:]
				code = code[:j]
				j = len(text)
			case ch == '"' || ch == '\'':
				if delim := strings.Repeat(string(ch), 3); strings.HasPrefix(text[j:], delim) {
					triple = delim
					j += 2
					continue
				}
				quote = ch
			case ch == '(' || ch == '[' || ch == '{':
				depth++
			case ch == ')' || ch == ']' || ch == '}':
				if depth > 0 {
					depth--
				}
			}
		}

		l.code = string(code)
		backslash = triple == "" && l.commentAt < 0 && strings.HasSuffix(strings.TrimRight(l.code, " \t"), "\\")
		out[i] = l
	}
	return out
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// indentWidth expands tabs to the next multiple of eight.
func indentWidth(indent string) int {
	w := 0
	for i := 0; i < len(indent); i++ {
		if indent[i] == '\t' {
			w = w/8*8 + 8
		} else {
			w++
		}
	}
	return w
}
