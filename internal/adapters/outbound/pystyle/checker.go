// Package pystyle implements an in-process Python style checker using
// pep8-compatible rule codes, plus the validator that reports its findings.
package pystyle

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/repovalidate/repovalidate/internal/domain"
)

// DefaultMaxLineLength matches pep8's default.
const DefaultMaxLineLength = 79

// Checker implements domain.StyleChecker.
type Checker struct {
	maxLineLength int
}

func New(maxLineLength int) *Checker {
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	return &Checker{maxLineLength: maxLineLength}
}

// Check reads path and checks it.
func (c *Checker) Check(path string, ignore []string) ([]domain.StyleViolation, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return c.CheckSource(src, ignore), nil
}

// CheckSource checks src and returns violations ordered by line and column.
// A code is suppressed when it starts with any entry in ignore, so "E1"
// silences every E1xx rule.
func (c *Checker) CheckSource(src []byte, ignore []string) []domain.StyleViolation {
	texts, finalNewline := splitSource(string(src))
	lines := scan(texts)

	r := &report{ignore: ignore}
	c.physical(r, lines, finalNewline)
	c.logical(r, lines)

	sort.SliceStable(r.out, func(i, j int) bool {
		if r.out[i].Line != r.out[j].Line {
			return r.out[i].Line < r.out[j].Line
		}
		return r.out[i].Offset < r.out[j].Offset
	})
	return r.out
}

type report struct {
	ignore []string
	out    []domain.StyleViolation
}

func (r *report) add(line, offset int, code, text string) {
	for _, ig := range r.ignore {
		if ig != "" && strings.HasPrefix(code, ig) {
			return
		}
	}
	r.out = append(r.out, domain.StyleViolation{Line: line, Offset: offset, Code: code, Text: text})
}

// Validator implements domain.Validator on top of any StyleChecker.
type Validator struct {
	checker domain.StyleChecker
	ignore  []string
}

func NewValidator(checker domain.StyleChecker, ignore []string) *Validator {
	return &Validator{checker: checker, ignore: ignore}
}

// Validate renders each violation as "row:col: code text" with a 1-based
// column.
func (v *Validator) Validate(_ context.Context, path string) ([]domain.Outcome, error) {
	violations, err := v.checker.Check(path, v.ignore)
	if err != nil {
		return nil, err
	}
	if len(violations) == 0 {
		return []domain.Outcome{domain.Pass(domain.CheckPEP8, path)}, nil
	}

	diags := make([]string, 0, len(violations))
	for _, x := range violations {
		diags = append(diags, fmt.Sprintf("%d:%d: %s %s", x.Line, x.Offset+1, x.Code, x.Text))
	}
	return []domain.Outcome{domain.Fail(domain.CheckPEP8, path, domain.KindStyleViolation, diags...)}, nil
}
