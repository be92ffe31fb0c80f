// Package report owns the persistent failure report and the live log.
package report

import (
	"fmt"

	"github.com/repovalidate/repovalidate/internal/domain"
)

// Header returns the one-line status record of an outcome.
func Header(o domain.Outcome) string {
	status := "PASSED"
	if o.Failed() {
		status = "FAILED"
	}
	return fmt.Sprintf("* %s: [%s]: %s", o.Check, status, o.Path)
}

// FormatFailure renders a failed outcome as report lines. The body layout
// depends on the failure kind: tool output is quoted under an OUTPUT header,
// parser errors follow a blank line, metadata findings are tab-indented.
func FormatFailure(o domain.Outcome) []string {
	lines := []string{Header(o)}

	switch o.Kind {
	case domain.KindExternalToolFailure:
		lines = append(lines, fmt.Sprintf("* %s: [OUTPUT]:", o.Check))
		lines = append(lines, prefixed(" ", o.Diagnostics)...)
	case domain.KindParseFailure:
		lines = append(lines, "")
		lines = append(lines, prefixed(" ", o.Diagnostics)...)
	case domain.KindMetadataMissing, domain.KindMetadataIncomplete:
		lines = append(lines, prefixed("\t", o.Diagnostics)...)
	case domain.KindValidatorError:
		lines = append(lines, prefixed(" ", o.Diagnostics)...)
	default:
		lines = append(lines, o.Diagnostics...)
	}

	return lines
}

func prefixed(prefix string, diags []string) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, prefix+d)
	}
	return out
}
