package teaui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/uistate"
	"tableflip.dev/ftf/pkg/week"
)

const sidebarWidth = 34

// View renders the sidebar of goals next to the focused day, with the modal
// and status line beneath.
func (m Model) View() string {
	w := m.ws.Current()

	var sections []string
	sections = append(sections, m.renderHeader(w))
	if w == nil {
		sections = append(sections, faintStyle.Render("No week loaded."))
	} else {
		day := m.renderDay(w)
		if m.ui.SidebarCollapsed() {
			sections = append(sections, day)
		} else {
			gap := lipgloss.NewStyle().Padding(0, 1).Render
			sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(w), gap(" "), day))
		}
	}
	if modal := m.renderModal(w); modal != "" {
		sections = append(sections, modal)
	}
	status := m.status
	if m.termWidth > 0 {
		status = wordwrap.String(status, m.termWidth)
	}
	sections = append(sections, faintStyle.Render(status))
	return strings.Join(sections, "\n\n")
}

func (m Model) renderHeader(w *week.Week) string {
	id := m.weekID
	if w != nil {
		id = w.ID
	}
	label, err := timeutil.FormatWeekLabel(id)
	if err != nil {
		label = string(id)
	}
	title := titleStyle.Render(fmt.Sprintf("%s · %s", id, label))
	if m.ui.Navigating() {
		title += faintStyle.Render("  loading…")
	}

	days := make([]string, 0, len(displayDays))
	for i, d := range displayDays {
		name := " " + d.Short() + " "
		if i == m.dayPos {
			name = targetStyle.Render(name)
		}
		days = append(days, name)
	}
	return title + "\n" + strings.Join(days, " ")
}

func (m Model) renderSidebar(w *week.Week) string {
	const on = "» "
	const off = "  "
	head := off + "Roles"
	if m.focus == paneSidebar {
		head = on + "Roles"
	}
	lines := []string{titleStyle.Render(head)}

	goals := sidebarGoals(w)
	idx := 0
	for _, r := range w.SortedRoles() {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(roleColor(r.Color))).Render("■ "+r.Name))
		for _, g := range w.GoalsByRole(r.ID) {
			cursor := "  "
			if m.focus == paneSidebar && idx == clamp(m.goalIdx, len(goals)) {
				cursor = "→ "
			}
			idx++
			text := truncate.StringWithTail(g.Text, sidebarWidth-6, "…")
			lines = append(lines, cursor+m.renderItem(dnd.KindGoal, g.ID, text, g.Completed))
		}
	}
	if len(goals) == 0 {
		lines = append(lines, faintStyle.Render("  no goals, press g to add one"))
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDay(w *week.Week) string {
	day := m.day()
	rows := dayRows(w, day)
	cursorAt := -1
	if m.focus == paneDay {
		cursorAt = clamp(m.rowIdx, len(rows))
	}

	date := timeutil.DateForDay(w.StartDate, day)
	lines := []string{titleStyle.Render(fmt.Sprintf("%s %s", day, date.Format("Jan 2")))}
	prios := w.ResolvedPrioritiesFor(day)
	all := w.DayPrioritiesFor(day)

	for i, r := range rows {
		var text string
		switch r.zone {
		case dnd.ZonePriorities:
			if r.index <= 0 {
				lines = append(lines, m.zoneHeader("Priorities", dnd.ZonePriorities, day))
			}
			if r.index < 0 {
				text = faintStyle.Render("drop goals here")
			} else {
				p := all[r.index]
				label := p.GoalID
				for _, rp := range prios {
					if rp.ID == p.ID {
						label = rp.Goal.Text
					}
				}
				text = m.renderItem(dnd.KindPriority, p.ID, label, p.Completed)
			}
		case dnd.ZoneTimeGrid:
			if r.slot == 0 {
				lines = append(lines, m.zoneHeader("Schedule", dnd.ZoneTimeGrid, day))
			}
			text = fmt.Sprintf("%5s ", timeutil.SlotToTime(r.slot))
			if b, ok := blockAt(w, day, r.slot); ok {
				if b.StartSlot == r.slot {
					title := fmt.Sprintf("%s (%s)", b.Title, timeutil.FormatDuration(b.Duration))
					text += "▌ " + m.renderItem(dnd.KindBlock, b.ID, title, b.Completed)
				} else {
					text += "│"
				}
			}
			slot := r.slot
			if m.ui.IsDropTargetActive(dnd.ZoneTimeGrid, day, &slot) {
				text = targetStyle.Render(text)
			}
		case dnd.ZoneEvening:
			lines = append(lines, m.zoneHeader("Evening", dnd.ZoneEvening, day))
			if e, ok := w.EveningBlockFor(day); ok {
				text = m.renderItem(dnd.KindEvening, e.ID, e.Title, e.Completed)
			} else {
				text = faintStyle.Render("free")
			}
		}

		cursor := "  "
		if i == cursorAt {
			cursor = "→ "
		}
		lines = append(lines, cursor+text)
	}
	return strings.Join(lines, "\n")
}

// zoneHeader highlights a zone while it is the drop target.
func (m Model) zoneHeader(name string, z dnd.Zone, day week.Day) string {
	if m.ui.IsDropTargetActive(z, day, nil) {
		return targetStyle.Render(name)
	}
	return faintStyle.Render(name)
}

// renderItem marks the dragged item and the selection.
func (m Model) renderItem(kind dnd.Kind, id, text string, completed bool) string {
	mark := "• "
	if completed {
		mark = "✓ "
		text = doneStyle.Render(text)
	}
	if m.ui.IsDraggingKind(kind) && draggedID(m.ui.Payload()) == id {
		mark = "⇢ "
	}
	if m.ui.IsSelected(id) {
		text = lipgloss.NewStyle().Underline(true).Render(text)
	}
	return mark + text
}

func (m Model) renderModal(w *week.Week) string {
	kind, ctx := m.ui.Modal()
	var title string
	switch kind {
	case uistate.ModalNone:
		return ""
	case uistate.ModalNewRole:
		title = "New role"
	case uistate.ModalNewGoal:
		title = "New goal"
		if w != nil {
			if r, ok := w.Role(ctx["roleId"]); ok {
				title += " for " + r.Name
			}
		}
	default:
		title = string(kind)
	}
	body := titleStyle.Render(title) + "\n" + m.input.View() + "\n" + faintStyle.Render("enter save · esc cancel")
	return panelStyle.Render(body)
}

func draggedID(p dnd.Payload) string {
	switch v := p.(type) {
	case dnd.GoalPayload:
		return v.GoalID
	case dnd.BlockPayload:
		return v.BlockID
	case dnd.PriorityPayload:
		return v.PriorityID
	case dnd.EveningPayload:
		return v.EveningBlockID
	}
	return ""
}
