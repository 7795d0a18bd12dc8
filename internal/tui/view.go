package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ensigniasec/drawerkit/internal/presentation"
)

// flatBorder has square ends on the top edge, used when the corner radius is zero.
//
//nolint:gochecknoglobals // Immutable border definition.
var flatBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "─",
	TopRight:    "─",
	BottomLeft:  "─",
	BottomRight: "─",
}

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	container := m.containerHeight()
	top := m.drawerTop()
	if top < 0 {
		top = 0
	}
	if top > container {
		top = container
	}

	parts := make([]string, 0, 3)
	if top > 0 {
		parts = append(parts, m.zones.Mark(zoneBackdrop, m.renderBackdrop(top)))
	}
	if rows := container - top; rows > 0 {
		parts = append(parts, m.zones.Mark(zoneDrawer, m.renderDrawer(m.ctrl.Surface(), rows)))
	}
	parts = append(parts, m.renderFooter())
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderBackdrop draws the area above the drawer: status lines, debug marks and
// a dimmed background while the drawer is raised.
func (m Model) renderBackdrop(rows int) string {
	lines := make([]string, rows)
	info := m.statusLines()
	copy(lines, info)

	if m.showMarks {
		for _, mark := range []struct {
			label string
			y     float64
		}{
			{"upper mark", m.ctrl.UpperMarkY()},
			{"lower mark", m.ctrl.LowerMarkY()},
		} {
			if r := int(math.Round(mark.y)); r >= 0 && r < rows {
				lines[r] = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).
					Render(strings.Repeat("╌", 4) + " " + mark.label + " y=" + formatRow(mark.y))
			}
		}
	}

	style := lipgloss.NewStyle().Width(m.width)
	if m.ctrl.Surface().BackgroundAlpha >= backdropDimAlpha {
		color := "236"
		if bg := m.cfg.BackgroundView; bg != nil && bg.Color != "" {
			color = bg.Color
		}
		style = style.Background(lipgloss.Color(color))
	}
	for i, l := range lines {
		lines[i] = style.Render(ansi.Truncate(l, m.width, "…"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusLines() []string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).Render("drawerkit")
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	s := m.ctrl.Surface()
	state := fmt.Sprintf("%s → %s", m.ctrl.CurrentState(), m.ctrl.TargetState())
	metrics := subtle.Render(fmt.Sprintf("y=%s  radius=%.1f  handle=%.2f", formatRow(s.Frame.Y), s.CornerRadius, s.HandleAlpha))

	lines := []string{
		title + "  " + state,
		metrics,
	}
	if m.sess.dismissed {
		lines = append(lines, subtle.Render("dismissed · press space to present"))
		return lines
	}
	bar := m.progress.ViewAs(m.sess.progress)
	if m.engine.Active() {
		bar += " " + m.spinner.View()
	}
	return append(lines, bar)
}

// renderDrawer draws the drawer surface into exactly rows lines.
func (m Model) renderDrawer(s presentation.Surface, rows int) string {
	border := m.border(s.CornerRadius)
	borderColor := lipgloss.Color("63")
	if b := m.cfg.Border; b != nil && b.Color != "" {
		borderColor = lipgloss.Color(b.Color)
	}
	edge := lipgloss.NewStyle().Foreground(borderColor)
	innerWidth := m.drawerInnerWidth()

	if rows == 1 {
		return edge.Render(border.TopLeft + strings.Repeat(border.Top, innerWidth) + border.TopRight)
	}

	innerRows := rows - 1
	content := make([]string, 0, innerRows)
	top := 0
	if m.cfg.HandleView != nil {
		top = m.cfg.HandleView.Top
	}
	for i := 0; i < top && len(content) < innerRows; i++ {
		content = append(content, "")
	}
	if len(content) < innerRows {
		content = append(content, lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, m.renderHandle(s)))
	}
	if listRows := innerRows - len(content); listRows > 0 {
		lst := m.items
		lst.SetSize(innerWidth, listRows)
		for _, l := range strings.Split(lst.View(), "\n") {
			if len(content) == innerRows {
				break
			}
			content = append(content, ansi.Truncate(l, innerWidth, ""))
		}
	}
	for len(content) < innerRows {
		content = append(content, "")
	}

	return lipgloss.NewStyle().
		Border(border, true, true, false, true).
		BorderForeground(borderColor).
		Width(innerWidth).
		Render(strings.Join(content, "\n"))
}

// renderHandle draws the grab handle: the configured glyph, or a bar whose
// shade follows the handle alpha.
func (m Model) renderHandle(s presentation.Surface) string {
	if s.HandleImage != "" {
		return s.HandleImage
	}
	width := 6
	if h := m.cfg.HandleView; h != nil && h.Width > 0 {
		width = h.Width
	}
	alpha := s.HandleAlpha
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	shade := handleShadeMin + int(math.Round(alpha*handleShadeRange))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(shade))).Render(strings.Repeat("━", width))
}

// border picks the edge style for radius: rounded near the maximum, square
// below it and flat at zero.
func (m Model) border(radius float64) lipgloss.Border {
	if b := m.cfg.Border; b != nil && b.Thickness == 0 {
		return lipgloss.HiddenBorder()
	}
	maxRadius := m.ctrl.MaximumCornerRadius()
	switch {
	case maxRadius > 0 && radius >= maxRadius/2:
		return lipgloss.RoundedBorder()
	case radius > 0:
		return lipgloss.NormalBorder()
	default:
		return flatBorder
	}
}

func (m Model) renderFooter() string {
	return m.help.View(m.keys)
}

func (m Model) footerHeight() int {
	return lipgloss.Height(m.renderFooter())
}

func (m Model) drawerInnerWidth() int {
	if m.width < 2 {
		return 0
	}
	return m.width - 2
}

func (m Model) listHeight() int {
	h := m.containerHeight() - 2
	if h < 1 {
		return 1
	}
	return h
}

func progressWidth(width int) int {
	w := width - 4
	if w > 40 {
		w = 40
	}
	if w < 10 {
		w = 10
	}
	return w
}

func formatRow(y float64) string {
	return strconv.FormatFloat(y, 'f', 1, 64)
}
