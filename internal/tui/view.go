package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

const (
	listWidth    = 20
	sidebarWidth = 30
	headerHeight = 3
)

const helpLine = "tab focus · enter play · p pause · r reset · m mode · [ ] cipher · s glossary · l lesson · t tour · ctrl+c quit"

func (m Model) View() string {
	base, _ := m.renderBase()
	tip := m.renderTooltip()
	switch {
	case tip == "":
		return base
	case m.tour.Step.IsFinalStep:
		// The final step has no target and is always centered.
		x := (m.width - lipgloss.Width(tip)) / 2
		y := (m.height - lipgloss.Height(tip)) / 2
		return overlay(base, tip, x, y)
	case m.tour.Visible && m.tour.Placement != nil:
		return overlay(base, tip, m.tour.Placement.X, m.tour.Placement.Y)
	}
	return base
}

// renderBase draws the page without the tooltip and records where every
// tour region landed.
func (m *Model) renderBase() (string, map[string]region) {
	regions := make(map[string]region)
	add := func(name string, x, y int, block string) {
		regions[name] = region{
			rect:    tour.Rect{X: x, Y: y, W: lipgloss.Width(block), H: lipgloss.Height(block)},
			visible: true,
		}
	}

	// Header: title on the left, glossary toggle on the right.
	toggle := m.box(tour.RegionSidebarToggle, "s  Glossary")
	toggleW := lipgloss.Width(toggle)
	leftW := max(m.width-toggleW, 0)
	title := titleStyle.Render("cipherlab") + mutedStyle.Render("  "+m.view.Cipher.Name)
	left := lipgloss.NewStyle().Width(leftW).Render(ansi.Truncate(title, leftW, "") + "\n" +
		ansi.Truncate(mutedStyle.Render(m.view.Cipher.Summary), leftW, "…"))
	header := lipgloss.JoinHorizontal(lipgloss.Top, left, toggle)
	add(tour.RegionSidebarToggle, leftW, 0, toggle)

	// Cipher list.
	var names []string
	for i, c := range m.ciphers {
		name := c.Info().Name
		if i == m.current {
			names = append(names, currentCipherStyle.Render("▸ "+name))
		} else {
			names = append(names, "  "+name)
		}
	}
	list := m.boxWidth(tour.RegionCipherList, strings.Join(names, "\n"), listWidth)
	add(tour.RegionCipherList, 0, headerHeight, list)

	mainX := lipgloss.Width(list) + 1
	mainW := m.width - mainX
	if m.sidebar {
		mainW -= sidebarWidth + 1
	}
	mainW = max(mainW, 30)
	fieldW := max(mainW-4, 10)

	var blocks []string
	y := headerHeight
	push := func(name, block string) {
		if name != "" {
			add(name, mainX, y, block)
		}
		blocks = append(blocks, block)
		y += lipgloss.Height(block)
	}

	push("", labelStyle.Render("Input"))
	m.input.Width = fieldW - 1
	push(tour.RegionInput, m.boxWidth(tour.RegionInput, m.input.View(), fieldW))

	keyLabel := "Key"
	if hint := m.view.Cipher.KeyHint; hint != "" {
		keyLabel += "  " + mutedStyle.Render("("+hint+")")
	}
	push("", labelStyle.Render(keyLabel))
	m.key.Width = fieldW - 1
	push(tour.RegionKey, m.boxWidth(tour.RegionKey, m.key.View(), fieldW))

	validation := m.view.Validation
	if validation == "" {
		validation = m.view.State.Error
	}
	push("", errorStyle.Render(ansi.Truncate(validation, mainW, "…")))

	// Buttons share one row; each is its own region.
	mode := "Encrypt"
	if m.view.Mode == ciphers.Decrypt {
		mode = "Decrypt"
	}
	play := "▶ Play"
	if m.view.State.Animating {
		play = "● Playing"
	}
	buttons := []struct{ name, label string }{
		{tour.RegionMode, "m  " + mode},
		{tour.RegionPlay, "enter  " + play},
		{tour.RegionLessonButton, "l  Lesson"},
	}
	var row []string
	x := mainX
	for i, b := range buttons {
		block := m.box(b.name, b.label)
		add(b.name, x, y, block)
		x += lipgloss.Width(block)
		row = append(row, block)
		if i < len(buttons)-1 {
			row = append(row, " ")
			x++
		}
	}
	buttonRow := lipgloss.JoinHorizontal(lipgloss.Top, row...)
	blocks = append(blocks, buttonRow)
	y += lipgloss.Height(buttonRow)

	push("", labelStyle.Render(fmt.Sprintf("Output  %d/%d %s", max(m.view.State.ActiveIndex, 0), m.view.State.Total, m.view.Cipher.UnitLabel)))
	push(tour.RegionOutput, m.boxWidth(tour.RegionOutput, m.renderOutput(fieldW), fieldW))
	push("", mutedStyle.Render(ansi.Truncate(m.view.Explanation, mainW, "…")))
	push("", errorStyle.Render(ansi.Truncate(m.status, mainW, "…")))

	main := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	columns := []string{list, " ", main}

	if m.sidebar {
		side := m.boxWidth(tour.RegionSidebar, m.renderGlossary(sidebarWidth-4), sidebarWidth-4)
		add(tour.RegionSidebar, m.width-lipgloss.Width(side), headerHeight, side)
		pad := max(m.width-lipgloss.Width(side)-mainX-lipgloss.Width(main), 1)
		columns = append(columns, strings.Repeat(" ", pad), side)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	frame := lipgloss.JoinVertical(lipgloss.Left, header, body, "", mutedStyle.Render(ansi.Truncate(helpLine, m.width, "…")))

	if m.lesson != nil {
		dialog := m.renderLesson()
		dx := max((m.width-lipgloss.Width(dialog))/2, 0)
		dy := max((m.height-lipgloss.Height(dialog))/2, 0)
		add(tour.RegionLessonDialog, dx, dy, dialog)
		frame = overlay(frame, dialog, dx, dy)
	}
	return frame, regions
}

// box frames content as a tour region.
func (m *Model) box(name, content string) string {
	return m.regionStyle(name).Render(content)
}

func (m *Model) boxWidth(name, content string, width int) string {
	return m.regionStyle(name).Width(width).Render(content)
}

func (m *Model) regionStyle(name string) lipgloss.Style {
	if m.layout.Highlighted(name) {
		return highlightStyle
	}
	return regionStyle
}

func (m *Model) renderOutput(width int) string {
	st := m.view.State
	if len(st.Output) == 0 {
		return mutedStyle.Render("press enter to animate")
	}
	var b strings.Builder
	lineW := 0
	for i, u := range st.Output {
		style := unitStyle
		if i == st.ActiveIndex-1 {
			style = activeUnitStyle
		}
		cell := style.Render(u)
		w := ansi.StringWidth(u) + 1
		if lineW > 0 && lineW+w > width {
			b.WriteString("\n")
			lineW = 0
		}
		b.WriteString(cell + " ")
		lineW += w
	}
	return b.String()
}

func (m *Model) renderGlossary(width int) string {
	if m.opts.Lessons == nil {
		return mutedStyle.Render("no lessons loaded")
	}
	var lines []string
	for _, l := range m.opts.Lessons.List() {
		lines = append(lines, titleStyle.Render(ansi.Truncate(l.Title, width, "…")))
		lines = append(lines, mutedStyle.Width(width).Render(l.Summary))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderLesson() string {
	width := min(70, max(m.width-8, 20))
	maxLines := max(m.height-8, 5)
	body := lipgloss.NewStyle().Width(width).Render(m.lesson.body)
	if lines := strings.Split(body, "\n"); len(lines) > maxLines {
		body = strings.Join(lines[:maxLines], "\n") + "\n" + mutedStyle.Render("…")
	}
	content := titleStyle.Render(m.lesson.title) + "\n\n" + body + "\n\n" + mutedStyle.Render("esc to close")
	return dialogStyle.Render(content)
}

// renderTooltip draws the current tour step, or "" when nothing shows.
func (m *Model) renderTooltip() string {
	st := m.tour
	if !st.Active || st.Step == nil {
		return ""
	}
	var hint string
	switch {
	case st.WaitingForClick:
		hint = "do it to continue · esc skip"
	case st.WaitingForClose:
		hint = "close it to continue · esc skip"
	case st.Step.IsFinalStep:
		hint = "n finish · b back"
	default:
		hint = "n next · b back · esc skip"
	}
	content := tooltipTitleStyle.Render(st.Step.Title) + "\n" +
		st.Step.Description + "\n\n" +
		mutedStyle.Render(fmt.Sprintf("%d/%d  %s", st.Index+1, st.Total, hint))
	return tooltipStyle.Render(content)
}

// syncLayout measures the current frame and lets the tour know when
// anything moved.
func (m *Model) syncLayout() {
	_, regions := m.renderBase()
	var size tour.Size
	if tip := m.renderTooltip(); tip != "" {
		size = tour.Size{W: lipgloss.Width(tip), H: lipgloss.Height(tip)}
	}
	if m.layout.update(tour.Size{W: m.width, H: m.height}, size, regions) {
		m.engine.Reposition()
		m.tour = m.engine.Snapshot()
	}
}

// overlay draws fg over bg with its top-left corner at (x, y).
func overlay(bg, fg string, x, y int) string {
	x, y = max(x, 0), max(y, 0)
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	for len(bgLines) < y+len(fgLines) {
		bgLines = append(bgLines, "")
	}
	for i, line := range fgLines {
		bgLine := bgLines[y+i]
		if n := ansi.StringWidth(bgLine); n < x {
			bgLine += strings.Repeat(" ", x-n)
		}
		if n := ansi.StringWidth(line); n < fgW {
			line += strings.Repeat(" ", fgW-n)
		}
		left := ansi.Truncate(bgLine, x, "")
		right := ansi.TruncateLeft(bgLine, x+fgW, "")
		bgLines[y+i] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
