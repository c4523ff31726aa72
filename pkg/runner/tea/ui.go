package teaui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/uistate"
	"tableflip.dev/ftf/pkg/week"
)

const (
	paneSidebar = iota
	paneDay
)

// displayDays is the column order of the week, Monday first.
var displayDays = []week.Day{
	week.Monday, week.Tuesday, week.Wednesday, week.Thursday,
	week.Friday, week.Saturday, week.Sunday,
}

// row is one line of the day pane that can hold the cursor.
type row struct {
	zone  dnd.Zone
	index int // priority index, -1 for the empty placeholder
	slot  week.Slot
}

// sidebarGoal is a goal in sidebar order, with the role it belongs to.
type sidebarGoal struct {
	goal week.Goal
	role week.Role
}

type weekLoadedMsg struct {
	id  week.ID
	err error
}

// Model is the week view. Cursor moves become hovers while a drag is in
// progress; enter drops, esc cancels.
type Model struct {
	ws      *app.WeekStore
	ui      *uistate.State
	session dnd.Session
	ctx     context.Context
	weekID  week.ID

	focus   int
	goalIdx int
	dayPos  int
	rowIdx  int

	input  textinput.Model
	status string

	termWidth  int
	termHeight int
}

// New creates a week view over ws. ws should already hold a loaded week.
func New(ctx context.Context, ws *app.WeekStore, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	state := uistate.New()
	var id week.ID
	if cur := ws.Current(); cur != nil {
		id = cur.ID
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""

	return Model{
		ws: ws,
		ui: state,
		session: dnd.Session{
			Engine: dnd.NewEngine(ws, log),
			State:  state,
		},
		ctx:    ctx,
		weekID: id,
		focus:  paneSidebar,
		input:  ti,
		status: "space pick · enter drop · esc cancel · tab pane · s sidebar · n role · g goal · [ ] week · q quit",
	}
}

// State exposes the interaction state the view renders from.
func (m Model) State() *uistate.State {
	return m.ui
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
	case weekLoadedMsg:
		m.ui.SetNavigating(false)
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
			break
		}
		m.goalIdx, m.rowIdx = 0, 0
		m.status = "Opened " + string(msg.id)
	case tea.KeyPressMsg:
		if kind, _ := m.ui.Modal(); kind != uistate.ModalNone {
			return m.updateModal(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateModal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		kind, modalCtx := m.ui.Modal()
		m.closeModal()
		if text == "" {
			m.status = "Cancelled"
			return m, nil
		}
		switch kind {
		case uistate.ModalNewRole:
			if r, err := m.ws.AddRole(text); err != nil {
				m.status = "ERR: " + err.Error()
			} else {
				m.status = "Added role " + r.Name
			}
		case uistate.ModalNewGoal:
			if g, err := m.ws.AddGoal(app.GoalInput{RoleID: modalCtx["roleId"], Text: text}); err != nil {
				m.status = "ERR: " + err.Error()
			} else {
				m.status = "Added goal " + g.Text
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openModal(kind uistate.ModalKind, ctx map[string]string) tea.Cmd {
	m.ui.OpenModal(kind, ctx)
	m.input.Reset()
	return m.input.Focus()
}

func (m *Model) closeModal() {
	m.ui.CloseModal()
	m.input.Reset()
	m.input.Blur()
}

func (m Model) updateNormal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	w := m.ws.Current()
	switch msg.String() {
	case "q", "ctrl+c":
		m.session.Cancel()
		return m, tea.Quit
	case "[":
		return m.switchWeek(-1)
	case "]":
		return m.switchWeek(1)
	case "n":
		if w == nil {
			return m, nil
		}
		return m, m.openModal(uistate.ModalNewRole, nil)
	}

	if w == nil {
		m.status = "No week loaded, use [ or ] to open one"
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if m.focus == paneSidebar || !m.ui.SidebarCollapsed() {
			m.focus = 1 - m.focus
		}
	case "s":
		m.ui.ToggleSidebar()
		if m.ui.SidebarCollapsed() {
			m.focus = paneDay
		}
	case "up", "k":
		m.moveCursor(w, -1)
	case "down", "j":
		m.moveCursor(w, 1)
	case "left", "h":
		if m.focus == paneDay {
			m.moveDay(w, -1)
		}
	case "right", "l":
		if m.focus == paneDay {
			m.moveDay(w, 1)
		} else {
			m.focus = paneDay
		}
	case "space", " ":
		m.pick(w)
	case "enter":
		if m.ui.Dragging() {
			m.drop()
		} else {
			m.pick(w)
		}
	case "esc":
		if m.ui.Dragging() {
			m.session.Cancel()
			m.status = "Drop cancelled"
		}
	case "x":
		m.toggle(w)
	case "d":
		m.remove(w)
	case "g":
		roleID := m.currentRoleID(w)
		if roleID == "" {
			m.status = "Add a role first"
			return m, nil
		}
		return m, m.openModal(uistate.ModalNewGoal, map[string]string{"roleId": roleID})
	}
	m.syncSelection()
	m.hover()
	return m, nil
}

func (m Model) switchWeek(delta int) (tea.Model, tea.Cmd) {
	if m.ui.Navigating() {
		return m, nil
	}
	from := m.weekID
	if from == "" {
		from = timeutil.CurrentWeekID(time.Now())
	}
	var (
		next week.ID
		err  error
	)
	if delta < 0 {
		next, err = timeutil.PreviousWeekID(from)
	} else {
		next, err = timeutil.NextWeekID(from)
	}
	if err != nil {
		m.status = "ERR: " + err.Error()
		return m, nil
	}

	m.session.Cancel()
	m.ui.ClearSelection()
	m.ui.SetNavigating(true)
	m.weekID = next
	m.status = "Opening " + string(next)

	ws, ctx := m.ws, m.ctx
	return m, func() tea.Msg {
		if err := ws.Flush(ctx); err != nil {
			return weekLoadedMsg{id: next, err: err}
		}
		return weekLoadedMsg{id: next, err: ws.OpenWeek(ctx, next)}
	}
}

func (m Model) day() week.Day {
	return displayDays[m.dayPos]
}

func (m *Model) moveDay(w *week.Week, delta int) {
	m.dayPos = (m.dayPos + delta + len(displayDays)) % len(displayDays)
	if n := len(dayRows(w, m.day())); m.rowIdx >= n {
		m.rowIdx = n - 1
	}
}

func (m *Model) moveCursor(w *week.Week, delta int) {
	if m.focus == paneSidebar {
		n := len(sidebarGoals(w))
		if n == 0 {
			return
		}
		m.goalIdx = clamp(m.goalIdx+delta, n)
		return
	}
	m.rowIdx = clamp(m.rowIdx+delta, len(dayRows(w, m.day())))
}

// target is the zone under the day cursor.
func (m Model) target(w *week.Week) dnd.Target {
	if m.focus != paneDay || w == nil {
		return nil
	}
	rows := dayRows(w, m.day())
	r := rows[clamp(m.rowIdx, len(rows))]
	t, err := dnd.NewTarget(r.zone, m.day(), r.slot)
	if err != nil {
		return nil
	}
	return t
}

// hover follows the cursor while dragging.
func (m *Model) hover() {
	if m.ui.Dragging() {
		m.session.Hover(m.target(m.ws.Current()))
	}
}

// itemUnder returns the kind and id of the entity under the active cursor.
func (m Model) itemUnder(w *week.Week) (dnd.Kind, string) {
	if m.focus == paneSidebar {
		goals := sidebarGoals(w)
		if len(goals) == 0 {
			return "", ""
		}
		return dnd.KindGoal, goals[clamp(m.goalIdx, len(goals))].goal.ID
	}
	rows := dayRows(w, m.day())
	r := rows[clamp(m.rowIdx, len(rows))]
	switch r.zone {
	case dnd.ZonePriorities:
		if r.index < 0 {
			return "", ""
		}
		return dnd.KindPriority, w.DayPrioritiesFor(m.day())[r.index].ID
	case dnd.ZoneTimeGrid:
		if b, ok := blockAt(w, m.day(), r.slot); ok {
			return dnd.KindBlock, b.ID
		}
	case dnd.ZoneEvening:
		if e, ok := w.EveningBlockFor(m.day()); ok {
			return dnd.KindEvening, e.ID
		}
	}
	return "", ""
}

func (m *Model) syncSelection() {
	w := m.ws.Current()
	if w == nil {
		m.ui.ClearSelection()
		return
	}
	_, id := m.itemUnder(w)
	m.ui.Select(id)
}

func (m *Model) pick(w *week.Week) {
	if m.ui.Dragging() {
		return
	}
	kind, id := m.itemUnder(w)
	if id == "" {
		m.status = "Nothing to pick up here"
		return
	}
	p, err := dnd.PayloadFor(w, kind, id)
	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.session.Start(p)
	if m.focus == paneSidebar {
		m.focus = paneDay
	}
	m.status = fmt.Sprintf("Dragging %s %s", kind, payloadLabel(p))
}

func (m *Model) drop() {
	outcome, err := m.session.End(m.ctx, m.target(m.ws.Current()))
	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	if err := m.ws.Flush(m.ctx); err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	if !m.ws.Synced() {
		m.status = "ERR: " + app.ErrNotSaved.Error()
		return
	}
	if outcome.Kind == dnd.OutcomeNoop {
		m.status = "Nothing changed: " + outcome.Reason
		return
	}
	m.status = "Dropped: " + string(outcome.Kind)
}

func (m *Model) toggle(w *week.Week) {
	kind, id := m.itemUnder(w)
	var err error
	switch kind {
	case dnd.KindGoal:
		err = m.ws.ToggleGoalCompleted(id)
	case dnd.KindPriority:
		err = m.ws.ToggleDayPriorityCompleted(id)
	case dnd.KindBlock:
		err = m.ws.ToggleTimeBlockCompleted(id)
	case dnd.KindEvening:
		err = m.ws.ToggleEveningBlockCompleted(id)
	default:
		return
	}
	if err != nil {
		m.status = "ERR: " + err.Error()
	}
}

func (m *Model) remove(w *week.Week) {
	if m.ui.Dragging() {
		return
	}
	kind, id := m.itemUnder(w)
	var err error
	switch kind {
	case dnd.KindGoal:
		err = m.ws.DeleteGoal(id)
	case dnd.KindPriority:
		err = m.ws.RemoveDayPriority(id)
	case dnd.KindBlock:
		err = m.ws.DeleteTimeBlock(id)
	case dnd.KindEvening:
		err = m.ws.DeleteEveningBlock(id)
	default:
		return
	}
	if err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.status = "Deleted"
	if w = m.ws.Current(); w != nil {
		m.goalIdx = clamp(m.goalIdx, len(sidebarGoals(w)))
		m.rowIdx = clamp(m.rowIdx, len(dayRows(w, m.day())))
	}
}

// currentRoleID is the role of the goal under the sidebar cursor, or the
// first role.
func (m Model) currentRoleID(w *week.Week) string {
	if goals := sidebarGoals(w); len(goals) > 0 && m.focus == paneSidebar {
		return goals[clamp(m.goalIdx, len(goals))].role.ID
	}
	if roles := w.SortedRoles(); len(roles) > 0 {
		return roles[0].ID
	}
	return ""
}

func sidebarGoals(w *week.Week) []sidebarGoal {
	if w == nil {
		return nil
	}
	var out []sidebarGoal
	for _, r := range w.SortedRoles() {
		for _, g := range w.GoalsByRole(r.ID) {
			out = append(out, sidebarGoal{goal: g, role: r})
		}
	}
	return out
}

// dayRows lists the priorities of day (or a placeholder), every grid slot
// and the evening slot.
func dayRows(w *week.Week, day week.Day) []row {
	var rows []row
	n := 0
	if w != nil {
		n = len(w.DayPrioritiesFor(day))
	}
	if n == 0 {
		rows = append(rows, row{zone: dnd.ZonePriorities, index: -1})
	}
	for i := 0; i < n; i++ {
		rows = append(rows, row{zone: dnd.ZonePriorities, index: i})
	}
	for s := week.Slot(0); s < week.SlotsPerDay; s++ {
		rows = append(rows, row{zone: dnd.ZoneTimeGrid, slot: s})
	}
	return append(rows, row{zone: dnd.ZoneEvening})
}

// blockAt returns the first block of day covering slot.
func blockAt(w *week.Week, day week.Day, slot week.Slot) (week.TimeBlock, bool) {
	for _, b := range w.TimeBlocksFor(day) {
		if b.StartSlot <= slot && slot < b.EndSlot() {
			return b, true
		}
	}
	return week.TimeBlock{}, false
}

func payloadLabel(p dnd.Payload) string {
	switch v := p.(type) {
	case dnd.GoalPayload:
		return v.Text
	case dnd.PriorityPayload:
		return v.Text
	case dnd.EveningPayload:
		return v.Title
	case dnd.BlockPayload:
		return v.BlockID
	}
	return ""
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// roleColor maps a palette name to a terminal color.
func roleColor(c week.RoleColor) string {
	switch c {
	case week.Teal:
		return "6"
	case week.Amber:
		return "3"
	case week.Rose:
		return "1"
	case week.Violet:
		return "5"
	case week.Emerald:
		return "2"
	case week.Orange:
		return "208"
	case week.Sky:
		return "12"
	case week.Fuchsia:
		return "13"
	}
	return "7"
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	targetStyle = lipgloss.NewStyle().Reverse(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("244"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)
