package report

import (
	"fmt"
	"strings"

	"github.com/hpungsan/nexascope/internal/diagnosis"
)

// Section headings of the full report.
const (
	headingFull      = "Análisis completo"
	headingMeaning   = "Qué está pasando"
	headingPlan      = "Qué hacer en los próximos 14 días"
	headingAvoid     = "Qué no hacer todavía"
	headingSecondary = "Observación adicional"
	headingDecision  = "Decisión recomendada"
)

// Preview renders the teaser as markdown.
func Preview(p diagnosis.Preview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", p.Title)
	b.WriteString(p.Teaser)
	b.WriteString("\n")
	return b.String()
}

// Full renders the complete diagnosis as markdown.
func Full(d diagnosis.Diagnosis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", headingFull)
	fmt.Fprintf(&b, "**Diagnóstico:** %s\n\n", d.Headline)

	fmt.Fprintf(&b, "#### %s\n\n%s\n\n", headingMeaning, d.Explanation)

	fmt.Fprintf(&b, "#### %s\n\n", headingPlan)
	writeList(&b, d.Plan)

	fmt.Fprintf(&b, "#### %s\n\n", headingAvoid)
	writeList(&b, d.Avoid)

	if d.SecondaryNote != nil && *d.SecondaryNote != "" {
		fmt.Fprintf(&b, "#### %s\n\n%s\n\n", headingSecondary, *d.SecondaryNote)
	}

	fmt.Fprintf(&b, "#### %s\n\n**%s**\n\n%s\n", headingDecision, d.Decision, d.DecisionExplanation)

	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
