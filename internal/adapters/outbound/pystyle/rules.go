package pystyle

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
)

var (
	defRe       = regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)`)
	classRe     = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)`)
	docstringRe = regexp.MustCompile(`^[uUbBrR]*['"]`)
	noneRe      = regexp.MustCompile(`([=!]=)\s*None\b|\bNone\s*([=!]=)`)
	boolRe      = regexp.MustCompile(`([=!]=)\s*(True|False)\b|\b(True|False)\s*([=!]=)`)
)

// physical runs the checks that look at raw physical lines.
func (c *Checker) physical(r *report, lines []line, finalNewline bool) {
	var indentChar byte
	for _, l := range lines {
		if n := utf8.RuneCountInString(l.text); n > c.maxLineLength {
			r.add(l.num, c.maxLineLength, "E501", fmt.Sprintf("line too long (%d > %d characters)", n, c.maxLineLength))
		}

		stripped := strings.TrimRight(l.text, " \t\v\f")
		if stripped != l.text {
			if stripped == "" {
				r.add(l.num, 0, "W293", "whitespace on blank line")
			} else {
				r.add(l.num, utf8.RuneCountInString(stripped), "W291", "trailing whitespace")
			}
		}

		if l.inString || stripped == "" {
			continue
		}
		indent := leadingWhitespace(l.text)
		if indent == "" {
			continue
		}
		if indentChar == 0 {
			indentChar = indent[0]
		}
		if k := strings.IndexByte(indent, '\t'); k >= 0 {
			r.add(l.num, k, "W191", "indentation contains tabs")
		}
		for k := 0; k < len(indent); k++ {
			if indent[k] != indentChar {
				r.add(l.num, k, "E101", "indentation contains mixed spaces and tabs")
				break
			}
		}
	}

	if len(lines) == 0 {
		return
	}
	last := lines[len(lines)-1]
	switch {
	case !finalNewline:
		r.add(last.num, utf8.RuneCountInString(last.text), "W292", "no newline at end of file")
	case strings.TrimSpace(last.text) == "":
		r.add(last.num, 0, "W391", "blank line at end of file")
	}
}

// logical runs the checks that need statement context. Continuation lines
// belong to the statement above and only get token-level checks.
func (c *Checker) logical(r *report, lines []line) {
	var (
		blanks     int
		prev       string
		prevIndent int
		seenCode   bool
	)

	for _, l := range lines {
		checkTokens(r, l)
		if l.continued {
			continue
		}

		code := strings.TrimSpace(l.code)
		if code == "" {
			if l.commentAt < 0 {
				blanks++
			} else {
				checkComment(r, l, true)
			}
			continue
		}
		if l.commentAt >= 0 {
			checkComment(r, l, false)
		}

		indentStr := leadingWhitespace(l.text)
		indent := indentWidth(indentStr)
		if indent%4 != 0 {
			r.add(l.num, 0, "E111", "indentation is not a multiple of four")
		}
		if seenCode {
			checkBlankLines(r, l.num, code, indent, blanks, prev, prevIndent)
		}
		checkStatement(r, l, len(indentStr), code)

		prev, prevIndent, seenCode, blanks = code, indent, true, 0
	}
}

func checkTokens(r *report, l line) {
	code := l.code

	for i := 0; i+1 < len(code); i++ {
		if code[i] != ',' {
			continue
		}
		switch code[i+1] {
		case ' ', '\t', ')', ']':
			continue
		}
		r.add(l.num, column(l.text, i), "E231", "missing whitespace after ','")
	}

	for i := 0; i < len(code); i++ {
		if code[i] != ';' {
			continue
		}
		if strings.TrimSpace(code[i+1:]) == "" {
			r.add(l.num, column(l.text, i), "E703", "statement ends with a semicolon")
		} else {
			r.add(l.num, column(l.text, i), "E702", "multiple statements on one line (semicolon)")
		}
	}

	for _, m := range noneRe.FindAllStringSubmatchIndex(code, -1) {
		opStart, opEnd := m[2], m[3]
		if opStart < 0 {
			opStart, opEnd = m[4], m[5]
		}
		op := code[opStart:opEnd]
		r.add(l.num, column(l.text, opStart), "E711", fmt.Sprintf("comparison to None should be 'if cond is %sNone:'", not(op != "==")))
	}

	for _, m := range boolRe.FindAllStringSubmatchIndex(code, -1) {
		opStart, opEnd, sStart, sEnd := m[2], m[3], m[4], m[5]
		if opStart < 0 {
			opStart, opEnd, sStart, sEnd = m[8], m[9], m[6], m[7]
		}
		same := code[opStart:opEnd] == "=="
		singleton := code[sStart:sEnd]
		nonzero := (singleton == "True" && same) || (singleton == "False" && !same)
		r.add(l.num, column(l.text, opStart), "E712", fmt.Sprintf("comparison to %s should be 'if cond is %s%s:' or 'if %scond:'",
			singleton, not(!same), singleton, not(!nonzero)))
	}
}

// column converts a byte offset in text to a character column.
func column(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return utf8.RuneCountInString(text[:offset])
}

func not(b bool) string {
	if b {
		return "not "
	}
	return ""
}

func checkComment(r *report, l line, block bool) {
	comment := l.comment
	if block {
		if l.num == 1 && strings.HasPrefix(comment, "#!") {
			return
		}
		if len(comment) > 1 && !strings.ContainsRune(" #:", rune(comment[1])) {
			r.add(l.num, column(l.text, l.commentAt), "E265", "block comment should start with '# '")
		}
		return
	}

	before := l.text[:l.commentAt]
	if !strings.HasSuffix(before, "  ") {
		r.add(l.num, utf8.RuneCountInString(strings.TrimRight(before, " \t")), "E261", "at least two spaces before inline comment")
	}
	if comment != "#" && !strings.HasPrefix(comment, "# ") {
		r.add(l.num, column(l.text, l.commentAt), "E262", "inline comment should start with '# '")
	}
}

func checkBlankLines(r *report, num int, code string, indent, blanks int, prev string, prevIndent int) {
	switch {
	case strings.HasPrefix(prev, "@"):
		if blanks > 0 {
			r.add(num, 0, "E304", "blank lines found after function decorator")
		}
	case blanks > 2 || (indent > 0 && blanks == 2):
		r.add(num, 0, "E303", fmt.Sprintf("too many blank lines (%d)", blanks))
	case isDefinition(code):
		if indent > 0 {
			if blanks == 0 && prevIndent >= indent && !docstringRe.MatchString(prev) {
				r.add(num, 0, "E301", "expected 1 blank line, found 0")
			}
		} else if blanks != 2 {
			r.add(num, 0, "E302", fmt.Sprintf("expected 2 blank lines, found %d", blanks))
		}
	}
}

func isDefinition(code string) bool {
	for _, p := range []string{"def ", "async def ", "class ", "@"} {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

func checkStatement(r *report, l line, indentLen int, code string) {
	if strings.HasPrefix(code, "import ") {
		if k := strings.IndexByte(code, ','); k >= 0 && !strings.Contains(code[:k], ";") {
			r.add(l.num, column(l.text, indentLen+k), "E401", "multiple imports on one line")
		}
	}

	if m := defRe.FindStringSubmatchIndex(code); m != nil {
		name := code[m[2]:m[3]]
		if name != strings.ToLower(name) {
			r.add(l.num, column(l.text, indentLen+m[2]), "N802", fmt.Sprintf("function name '%s' should be lowercase", name))
		}
	}

	if m := classRe.FindStringSubmatchIndex(code); m != nil {
		name := code[m[2]:m[3]]
		if !isCapWords(strings.TrimLeft(name, "_")) {
			r.add(l.num, column(l.text, indentLen+m[2]), "N801", fmt.Sprintf("class name '%s' should use CapWords convention", name))
		}
	}
}

// isCapWords reports whether name is written as CapWords: no underscores and
// a capitalized first word.
func isCapWords(name string) bool {
	if name == "" {
		return true
	}
	words := camelcase.Split(name)
	for _, w := range words {
		if strings.Contains(w, "_") {
			return false
		}
	}
	first, _ := utf8.DecodeRuneInString(words[0])
	return unicode.IsUpper(first)
}
