package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/maturekit/maturekit/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
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

	levelColors = map[int]lipgloss.Color{
		0: danger,
		1: lipgloss.Color("#FB923C"), // orange
		2: warning,
		3: lipgloss.Color("#A3E635"), // lime
		4: success,
		5: success,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	highStyle     = lipgloss.NewStyle().Foreground(danger).Bold(true)
	mediumStyle   = lipgloss.NewStyle().Foreground(warning).Bold(true)
	lowStyle      = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderProfile renders a full maturity profile for the terminal.
func RenderProfile(profile *domain.MaturityProfile, catalog *domain.RubricCatalog) string {
	var b strings.Builder

	title := headerStyle.Render("maturekit")
	subtitle := dimStyle.Render(fmt.Sprintf("Maturity Profile · %s", profile.CompanyID))
	scoreLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(levelColor(profile.OverallLevel)).
		Render(fmt.Sprintf("%.1f / 5.0  %s", profile.OverallScore, levelName(catalog, profile.OverallLevel)))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreLine))
	b.WriteString("\n\n")

	for _, ds := range profile.DomainScores {
		renderDomain(&b, ds, catalog)
	}

	if len(profile.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recommendations"))
		b.WriteString("\n")
		b.WriteString(separatorLine)
		b.WriteString("\n")
		for _, rec := range profile.Recommendations {
			renderRecommendation(&b, rec)
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("next assessment due %s", profile.NextAssessment.Format("2006-01-02"))))
	b.WriteString("\n")

	return b.String()
}

func renderDomain(b *strings.Builder, ds domain.MaturityScore, catalog *domain.RubricCatalog) {
	name := domainName(catalog, ds.DomainID)
	bar := scoreBar(ds.Score)
	level := lipgloss.NewStyle().
		Foreground(levelColor(ds.Level)).
		Render(fmt.Sprintf("L%d %s", ds.Level, levelName(catalog, ds.Level)))

	fmt.Fprintf(b, "%s  %s %.1f  %s  %s\n",
		titleStyle.Render(padRight(name, 14)),
		bar,
		ds.Score,
		level,
		dimStyle.Render(fmt.Sprintf("p%d %s", ds.Percentile, trendArrow(ds.Trend))),
	)

	for _, sd := range ds.SubDimensions {
		fmt.Fprintf(b, "  %s %s %.1f\n",
			dimStyle.Render(padRight(Humanize(sd.SubDimensionID), 22)),
			scoreBar(sd.Score),
			sd.Score,
		)
	}
}

func renderRecommendation(b *strings.Builder, rec domain.MaturityRecommendation) {
	fmt.Fprintf(b, "%s %s %s\n", priorityTag(rec.Priority), titleStyle.Render(rec.Title), dimStyle.Render("("+rec.Domain+")"))
	fmt.Fprintf(b, "   %s\n", rec.Action)
	if rec.Impact != "" || rec.EstimatedTime != "" {
		fmt.Fprintf(b, "   %s\n", dimStyle.Render(strings.TrimSpace(rec.Impact+"  "+rec.EstimatedTime)))
	}
}

// RenderDomains renders the catalog's domain definitions.
func RenderDomains(catalog *domain.RubricCatalog) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assessment Domains"))
	b.WriteString("\n")
	b.WriteString(separatorLine)
	b.WriteString("\n")
	for _, d := range catalog.Domains {
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(d.Name), dimStyle.Render(fmt.Sprintf("(weight %.2f)", d.Weight)))
		for _, sd := range d.SubDimensions {
			fmt.Fprintf(&b, "  %s %s\n", sd.Name, dimStyle.Render(fmt.Sprintf("· %d questions", len(sd.Questions))))
		}
	}
	return b.String()
}

// RenderLevels renders the maturity level ladder.
func RenderLevels(levels []domain.MaturityLevelDefinition) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Maturity Levels"))
	b.WriteString("\n")
	b.WriteString(separatorLine)
	b.WriteString("\n")
	for _, l := range levels {
		tag := lipgloss.NewStyle().Foreground(levelColor(l.Level)).Bold(true).Render(fmt.Sprintf("L%d %s", l.Level, l.Name))
		fmt.Fprintf(&b, "%s %s\n   %s\n", tag, dimStyle.Render(fmt.Sprintf("[%.1f – %.1f)", l.MinScore, l.MaxScore)), l.Description)
	}
	return b.String()
}

// Humanize turns a camelCase or snake_case identifier into a display name.
func Humanize(id string) string {
	var words []string
	for _, part := range strings.FieldsFunc(id, func(r rune) bool { return r == '_' || r == ' ' || r == '-' }) {
		words = append(words, camelcase.Split(part)...)
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func domainName(catalog *domain.RubricCatalog, id string) string {
	if d, ok := catalog.Domain(id); ok {
		return d.Name
	}
	return Humanize(id)
}

func levelName(catalog *domain.RubricCatalog, level int) string {
	for _, l := range catalog.Levels {
		if l.Level == level {
			return l.Name
		}
	}
	return fmt.Sprintf("Level %d", level)
}

func levelColor(level int) lipgloss.Color {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return dim
}

const barWidth = 10

func scoreBar(score float64) string {
	filled := int(domain.ClampScore(score) / domain.MaxScore * barWidth)
	return lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled)) +
		faintStyle.Render(strings.Repeat("░", barWidth-filled))
}

func priorityTag(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return highStyle.Render("[HIGH]")
	case domain.PriorityMedium:
		return mediumStyle.Render("[MED]")
	default:
		return lowStyle.Render("[LOW]")
	}
}

func trendArrow(t domain.Trend) string {
	switch t {
	case domain.TrendImproving:
		return "↑"
	case domain.TrendDeclining:
		return "↓"
	default:
		return "→"
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
