package explore

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	probeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	branchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	leafStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	pinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading...\n"
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	title := "decision tree explorer"
	if m.cfg.TreePath != "" {
		title = fmt.Sprintf("%s — %s", title, m.cfg.TreePath)
	}
	line := titleStyle.Render(title) + "  " +
		targetStyle.Render(fmt.Sprintf("predicting %s", Prettify(m.tree.Target)))
	return line + "\n"
}

func (m Model) renderFooter() string {
	status := m.statusLine()
	return statusStyle.Render(status) + "\n" + m.help.View(m.keys)
}

func (m Model) statusLine() string {
	var parts []string
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.cfg.Probe != nil {
		if m.probeErr != nil {
			parts = append(parts, errorStyle.Render(fmt.Sprintf("probe stops: %v", m.probeErr)))
		} else if len(m.probePath) > 0 {
			last := m.probePath[len(m.probePath)-1]
			parts = append(parts, fmt.Sprintf("probe → %s (%.2f)", last.Label, last.Confidence))
		}
	}
	if m.pinned != nil {
		switch {
		case m.cfg.Probe == nil:
			parts = append(parts, pinStyle.Render("pinned (give a probe record to trace from here)"))
		case m.pinnedErr != nil:
			parts = append(parts, pinStyle.Render(fmt.Sprintf("from pin: stops: %v", m.pinnedErr)))
		default:
			parts = append(parts, pinStyle.Render(fmt.Sprintf("from pin: %s", pathSummary(m.pinnedPath))))
		}
	}
	if len(parts) == 0 {
		return " "
	}
	return strings.Join(parts, "   ")
}

// renderTree returns the tree pane content and the line the
// cursor is on, so the viewport can keep it visible.
func (m Model) renderTree() (string, int) {
	onProbePath := make(map[*tree.Node]bool, len(m.probePath))
	for _, n := range m.probePath {
		onProbePath[n] = true
	}
	var b strings.Builder
	line := 0
	cursorLine := 0
	m.writeNode(&b, m.tree.Root, "", "", onProbePath, &line, &cursorLine)
	return b.String(), cursorLine
}

func (m Model) writeNode(b *strings.Builder, n *tree.Node, branchLabel, prefix string, onProbePath map[*tree.Node]bool, line, cursorLine *int) {
	gutter := "  "
	if n == m.cursor() {
		gutter = cursorStyle.Render("❯") + " "
		*cursorLine = *line
	}
	probeMark := " "
	if onProbePath[n] {
		probeMark = probeStyle.Render("●")
	}

	text := m.nodeText(n)
	if branchLabel != "" {
		text = branchStyle.Render(branchLabel+": ") + text
	}
	if n == m.pinned {
		text += pinStyle.Render(" [pinned]")
	}
	b.WriteString(gutter + probeMark + " " + branchStyle.Render(prefix) + text + "\n")
	*line++

	if n.IsLeaf() {
		return
	}
	childPrefix := strings.Replace(strings.Replace(prefix, "├─ ", "│  ", 1), "└─ ", "   ", 1)
	m.writeNode(b, n.Left, "yes", childPrefix+"├─ ", onProbePath, line, cursorLine)
	m.writeNode(b, n.Right, "no", childPrefix+"└─ ", onProbePath, line, cursorLine)
}

func (m Model) nodeText(n *tree.Node) string {
	if n.IsLeaf() {
		return leafStyle.Render(fmt.Sprintf("%s (confidence %.2f, samples %d)", n.Label, n.Confidence, n.Samples))
	}
	return fmt.Sprintf("%s? (gain %.3f, samples %d)", conditionLabel(n.Split, true), n.Confidence, n.Samples)
}

func (m Model) renderImportance() string {
	weights := m.tree.Importance()
	if len(weights) == 0 {
		return "The tree has no decision nodes, so no feature matters.\n"
	}
	nameWidth := 0
	for _, w := range weights {
		if l := len(Prettify(w.Feature)); l > nameWidth {
			nameWidth = l
		}
	}
	barWidth := m.width - nameWidth - 12
	if barWidth < 10 {
		barWidth = 10
	}
	maxWeight := weights[0].Weight
	var b strings.Builder
	b.WriteString(titleStyle.Render("feature importance") + "\n\n")
	for _, w := range weights {
		filled := 0
		if maxWeight > 0 {
			filled = int(math.Round(w.Weight / maxWeight * float64(barWidth)))
		}
		bar := barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(&b, "%-*s  %s %5.1f%%\n", nameWidth, Prettify(w.Feature), bar, w.Weight*100)
	}
	return b.String()
}

// conditionLabel is Split.Condition with the feature name
// prettified for display.
func conditionLabel(s *tree.Split, left bool) string {
	if s.Kind == tree.Numeric {
		if left {
			return fmt.Sprintf("%s <= %g", Prettify(s.Feature), s.Threshold)
		}
		return fmt.Sprintf("%s > %g", Prettify(s.Feature), s.Threshold)
	}
	if left {
		return fmt.Sprintf("%s = %s", Prettify(s.Feature), s.Category)
	}
	return fmt.Sprintf("%s != %s", Prettify(s.Feature), s.Category)
}

// pathSummary renders a walked path as its sequence of taken
// branch conditions ending on the reached node.
func pathSummary(path []*tree.Node) string {
	var parts []string
	for i, n := range path {
		if n.IsLeaf() {
			parts = append(parts, fmt.Sprintf("%s (%.2f)", n.Label, n.Confidence))
			continue
		}
		if i+1 < len(path) {
			parts = append(parts, conditionLabel(n.Split, path[i+1] == n.Left))
		} else {
			parts = append(parts, conditionLabel(n.Split, true)+"?")
		}
	}
	return strings.Join(parts, " → ")
}
