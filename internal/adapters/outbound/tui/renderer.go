package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/repovalidate/repovalidate/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	faintStyle   = lipgloss.NewStyle().Foreground(faint)
	passStyle    = lipgloss.NewStyle().Foreground(success)
	failStyle    = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warning)
	skipStyle    = lipgloss.NewStyle().Foreground(skipColor)
	fileStyle    = lipgloss.NewStyle().Foreground(dim)
	labelStyle   = lipgloss.NewStyle().Foreground(dim).Width(10)
	separatorRaw = strings.Repeat("─", 64)
)

// RenderPass renders the live-log line of a passing check.
func RenderPass(header string) string {
	return passStyle.Render(header)
}

// RenderFailure renders a failure block for the live log. The header is
// highlighted; diagnostic lines are shown as-is apart from color.
func RenderFailure(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	out := make([]string, 0, len(lines))
	out = append(out, failStyle.Render(lines[0]))
	for _, l := range lines[1:] {
		out = append(out, dimStyle.Render(l))
	}
	return strings.Join(out, "\n")
}

// RenderSkip renders the live-log line of a target no validator handles.
func RenderSkip(path string) string {
	return skipStyle.Render(fmt.Sprintf("* %s: [SKIPPED]: %s", domain.CheckDispatch, path))
}

// RenderSummary formats the end-of-run box.
func RenderSummary(s *domain.RunSummary, reportPath string) string {
	var b strings.Builder

	title := headerStyle.Render("repovalidate")
	subtitle := dimStyle.Render(modeLabel(s))

	var verdict string
	switch {
	case s.Halted:
		verdict = failStyle.Render("HALTED")
	case s.Passed():
		verdict = passStyle.Bold(true).Render("PASSED")
	default:
		verdict = failStyle.Render("FAILED")
	}

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	row(&b, "targets", fmt.Sprintf("%d", s.Targets))
	failures := fmt.Sprintf("%d", s.Failures)
	if s.Failures > 0 {
		failures = failStyle.Render(failures)
	}
	row(&b, "failures", failures)
	row(&b, "exit code", fmt.Sprintf("%d", domain.ClampExitCode(s.ExitCode)))
	if s.Failures > 0 && reportPath != "" {
		row(&b, "report", fileStyle.Render(reportPath))
	}

	b.WriteString("  " + faintStyle.Render(separatorRaw) + "\n")
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(label), value)
}

func modeLabel(s *domain.RunSummary) string {
	switch s.Mode {
	case domain.ModeGitLatest:
		hash := s.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			return "latest commit"
		}
		return "latest commit " + hash
	case domain.ModeExplicit:
		return "explicit files"
	default:
		return "working tree"
	}
}
