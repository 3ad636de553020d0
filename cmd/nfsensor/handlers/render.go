package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/nfsensor/internal/provisioning"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorAmber = lipgloss.Color("#f59e0b")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	actionStyles = map[provisioning.Action]lipgloss.Style{
		provisioning.ActionCreated: lipgloss.NewStyle().Foreground(colorGreen),
		provisioning.ActionUpdated: lipgloss.NewStyle().Foreground(colorGreen),
		provisioning.ActionExists:  lipgloss.NewStyle().Foreground(colorDim),
		provisioning.ActionSkipped: lipgloss.NewStyle().Foreground(colorAmber),
		provisioning.ActionPlanned: lipgloss.NewStyle().Foreground(colorBlue),
		provisioning.ActionFailed:  lipgloss.NewStyle().Bold(true).Foreground(colorRed),
	}
)

// summaryOrder is the order in which action counts are listed.
var summaryOrder = []provisioning.Action{
	provisioning.ActionCreated,
	provisioning.ActionUpdated,
	provisioning.ActionExists,
	provisioning.ActionSkipped,
	provisioning.ActionPlanned,
	provisioning.ActionFailed,
}

// renderReport produces the end-of-run summary. Without styling the output
// is plain text suitable for logs and pipes.
func renderReport(rep *provisioning.Report, styled bool) string {
	paint := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder

	title := "nfsensor " + rep.Stage
	if rep.DryRun {
		title += " (test mode, no changes made)"
	}
	b.WriteString("\n")
	b.WriteString(paint(titleStyle, "  "+title))
	b.WriteString("\n")
	b.WriteString(paint(dimStyle, "  "+strings.Repeat("═", len([]rune(title)))))
	b.WriteString("\n")

	if len(rep.Items) == 0 {
		b.WriteString(paint(dimStyle, "  No items processed"))
		b.WriteString("\n")
	}

	for _, item := range rep.Items {
		action := fmt.Sprintf("%-8s", item.Action)
		fmt.Fprintf(&b, "  %s %-23s %-24s %s\n",
			paint(actionStyles[item.Action], action),
			item.Kind,
			item.Name,
			itemDetail(item),
		)
	}

	var counts []string
	for _, action := range summaryOrder {
		if n := rep.Count(action); n > 0 {
			counts = append(counts, fmt.Sprintf("%d %s", n, action))
		}
	}
	if len(counts) > 0 {
		b.WriteString(paint(dimStyle, "  "+strings.Repeat("─", 40)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n", strings.Join(counts, ", "))
	}
	if rep.Outcome != "" {
		fmt.Fprintf(&b, "  %s %s\n", paint(actionStyles[provisioning.ActionFailed], "error:"), rep.Outcome)
	}

	return b.String()
}

// itemDetail joins the identifying columns that are set.
func itemDetail(item provisioning.ItemResult) string {
	var parts []string
	if item.UUID != "" {
		parts = append(parts, item.UUID)
	}
	if item.Cluster != "" {
		parts = append(parts, "cluster="+item.Cluster)
	}
	switch {
	case item.Error != "":
		parts = append(parts, item.Error)
	case item.Detail != "":
		parts = append(parts, item.Detail)
	}
	return strings.Join(parts, "  ")
}
