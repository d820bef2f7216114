// Package render formats API records as terminal panels and tables.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alnah/go-fcp/internal/fcp"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Table lays out rows under headers with per-column width alignment.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Width(widths[i] + 2).Render(h))
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				b.WriteString(lipgloss.NewStyle().Width(widths[i] + 2).Render(cell))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Panel wraps body in a titled border.
func Panel(title, body string) string {
	return titleStyle.Render(title) + "\n" + panelStyle.Render(body)
}

// Foods renders search results as a table.
func Foods(foods []fcp.Food) string {
	if len(foods) == 0 {
		return dimStyle.Render("no foods found") + "\n"
	}
	rows := make([][]string, 0, len(foods))
	for _, f := range foods {
		rows = append(rows, []string{
			f.ID, f.Name, f.Brand,
			fmt.Sprintf("%.0f", f.Calories),
			fmt.Sprintf("%.1fg", f.Protein),
			fmt.Sprintf("%.1fg", f.Carbs),
			fmt.Sprintf("%.1fg", f.Fat),
		})
	}
	return Table([]string{"ID", "NAME", "BRAND", "KCAL", "PROTEIN", "CARBS", "FAT"}, rows)
}

// Pantry renders the pantry contents as a table.
func Pantry(items []fcp.PantryItem) string {
	if len(items) == 0 {
		return dimStyle.Render("pantry is empty") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID, item.Name,
			fmt.Sprintf("%g %s", item.Quantity, item.Unit),
			item.ExpiresOn,
		})
	}
	return Table([]string{"ID", "NAME", "QUANTITY", "EXPIRES"}, rows)
}

// Recipes renders a recipe listing as a table.
func Recipes(recipes []fcp.Recipe) string {
	if len(recipes) == 0 {
		return dimStyle.Render("no recipes") + "\n"
	}
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, []string{
			r.ID, r.Name,
			strings.Join(r.Tags, ","),
			fmt.Sprintf("%d", r.Servings),
			fmt.Sprintf("%.0f kcal", r.PerServing.Calories),
		})
	}
	return Table([]string{"ID", "NAME", "TAGS", "SERVINGS", "PER SERVING"}, rows)
}

// Summary renders a daily summary as a titled panel.
func Summary(s fcp.DailySummary) string {
	body := fmt.Sprintf("calories  %.0f\nprotein   %.1f g\ncarbs     %.1f g\nfat       %.1f g",
		s.Totals.Calories, s.Totals.Protein, s.Totals.Carbs, s.Totals.Fat)
	if len(s.Entries) > 0 {
		body += dimStyle.Render(fmt.Sprintf("\n%d meals logged", len(s.Entries)))
	}
	return Panel("Daily summary "+s.Date, body)
}

// Label renders a label analysis, flagging server warnings.
func Label(a fcp.LabelAnalysis) string {
	name := a.ProductName
	if name == "" {
		name = "Nutrition label"
	}
	body := fmt.Sprintf("calories  %.0f\nprotein   %.1f g\ncarbs     %.1f g\nfat       %.1f g",
		a.PerServing.Calories, a.PerServing.Protein, a.PerServing.Carbs, a.PerServing.Fat)
	for _, w := range a.Warnings {
		body += "\n" + warnStyle.Render("! "+w)
	}
	return Panel(name, body)
}
