package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/repovalidate/repovalidate/internal/domain"
)

var sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

var variantOrder = []domain.Variant{
	domain.VariantStructuredData,
	domain.VariantStyle,
	domain.VariantPHP,
	domain.VariantShell,
	domain.VariantSkip,
}

// RenderClassification groups classified paths by the variant they route to.
func RenderClassification(entries []domain.Classification) string {
	var b strings.Builder

	groups := make(map[domain.Variant][]domain.Classification)
	for _, e := range entries {
		groups[e.Route] = append(groups[e.Route], e)
	}

	for _, v := range variantOrder {
		items := groups[v]
		if len(items) == 0 {
			continue
		}

		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s %s\n",
			sectionHeaderStyle.Render(string(v)),
			dimStyle.Render(fmt.Sprintf("(%d)", len(items))),
			faintStyle.Render(domain.CheckFor(v)),
		)
		for _, item := range items {
			line := fmt.Sprintf("    %s %s", warnStyle.Render("●"), item.Path)
			if item.Variant != item.Route {
				line += "  " + faintStyle.Render("default for "+string(item.Variant))
			}
			b.WriteString(line + "\n")
		}
	}

	if len(entries) == 0 {
		b.WriteString("  " + dimStyle.Render("No files to classify.") + "\n")
	}
	return b.String()
}
