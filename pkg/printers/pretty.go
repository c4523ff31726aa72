package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/ftf/pkg/glyph"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("6f1c9a2e-1b7d-4c3e-9d0a-5b8f0e6a7c21  "))
)

func (pp *PrettyPrint) w() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.w(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.w(), spacing)
	}
	_, _ = t.Fprintln(pp.w(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.w(), spacing)
	}
	_, _ = t.Fprint(pp.w(), title)
	_, _ = c.Fprintf(pp.w(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.w(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.w(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.w(), spacing)
	}
	_, _ = f.Fprint(pp.w(), " none\n")
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.w(), id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = y.Fprint(pp.w(), strings.Repeat(" ", pad))
	} else {
		_, _ = y.Fprint(pp.w(), " ")
	}
}

// RoleColor maps a palette color onto a terminal color.
func RoleColor(c week.RoleColor) *color.Color {
	switch c {
	case week.Teal:
		return color.New(color.FgCyan)
	case week.Amber:
		return color.New(color.FgYellow)
	case week.Rose:
		return color.New(color.FgRed)
	case week.Violet:
		return color.New(color.FgMagenta)
	case week.Emerald:
		return color.New(color.FgGreen)
	case week.Orange:
		return color.New(color.FgHiYellow)
	case week.Sky:
		return color.New(color.FgHiBlue)
	case week.Fuchsia:
		return color.New(color.FgHiMagenta)
	default:
		return color.New()
	}
}

// Roles prints the roles of w in order with their goals beneath.
func (pp *PrettyPrint) Roles(w *week.Week) {
	roles := w.SortedRoles()
	pp.TitleWithCount("Roles", len(roles), "role")
	if len(roles) == 0 {
		pp.none()
		pp.NewLine()
		return
	}
	faint := color.New(color.Faint)
	for _, r := range roles {
		pp.id(r.ID)
		_, _ = RoleColor(r.Color).Add(color.Bold).Fprintf(pp.w(), "■ %s", r.Name)
		_, _ = faint.Fprintf(pp.w(), " (%s)\n", r.Color)
		for _, g := range w.GoalsByRole(r.ID) {
			pp.id(g.ID)
			text := g.Text
			mark := " "
			if g.Completed {
				text = glyph.Strike(text)
				mark = glyph.Completed.String()
			}
			_, _ = fmt.Fprintf(pp.w(), "  %s %s", mark, text)
			if g.Notes != "" {
				_, _ = faint.Fprintf(pp.w(), " - %s", g.Notes)
			}
			_, _ = fmt.Fprintln(pp.w())
		}
	}
	pp.NewLine()
}

// Day prints the priorities, blocks and evening of one day.
func (pp *PrettyPrint) Day(w *week.Week, day week.Day) {
	monday := w.StartDate
	if monday.IsZero() {
		if m, err := timeutil.ParseWeekID(w.ID); err == nil {
			monday = m
		}
	}
	date := timeutil.DateForDay(monday, day)
	pp.Title(fmt.Sprintf("%s %s", day.String(), date.Format("Jan 2")))

	prios := w.DayPrioritiesFor(day)
	blocks := w.TimeBlocksFor(day)
	evening, hasEvening := w.EveningBlockFor(day)
	if len(prios) == 0 && len(blocks) == 0 && !hasEvening {
		pp.none()
		pp.NewLine()
		return
	}

	for _, p := range prios {
		pp.id(p.ID)
		g, ok := w.Goal(p.GoalID)
		if !ok {
			_, _ = fmt.Fprintf(pp.w(), "%s %s %s\n", glyph.Priority, glyph.Orphan, "(deleted goal)")
			continue
		}
		r, _ := w.Role(g.RoleID)
		mark := " "
		if p.Completed {
			mark = glyph.Completed.String()
		}
		_, _ = fmt.Fprintf(pp.w(), "%s %s ", glyph.Priority, mark)
		_, _ = RoleColor(r.Color).Fprintln(pp.w(), g.Text)
	}

	for _, b := range blocks {
		pp.id(b.ID)
		r, _ := w.Role(b.RoleID)
		m := glyph.ForBlock(b.Type, b.Completed, w.Orphaned(b.Type, b.GoalID))
		_, _ = fmt.Fprintf(pp.w(), "%s %5s-%-5s ", m, timeutil.SlotToTime(b.StartSlot), timeutil.SlotToTime(b.EndSlot()))
		_, _ = RoleColor(r.Color).Fprint(pp.w(), b.Title)
		_, _ = color.New(color.Faint).Fprintf(pp.w(), " %s\n", timeutil.FormatDuration(b.Duration))
	}

	if hasEvening {
		pp.id(evening.ID)
		r, _ := w.Role(evening.RoleID)
		mark := " "
		if evening.Completed {
			mark = glyph.Completed.String()
		}
		_, _ = fmt.Fprintf(pp.w(), "%s %s evening ", glyph.Evening, mark)
		_, _ = RoleColor(r.Color).Fprintln(pp.w(), evening.Title)
	}
	pp.NewLine()
}

// Week prints the whole week: header, roles, then Monday through Sunday.
func (pp *PrettyPrint) Week(w *week.Week) {
	label := string(w.ID)
	if human, err := timeutil.FormatWeekLabel(w.ID); err == nil {
		label = fmt.Sprintf("%s  %s", w.ID, human)
	}
	_, _ = color.New(color.Bold).Fprintln(pp.w(), label)
	pp.NewLine()
	pp.Roles(w)
	for _, day := range weekOrder {
		pp.Day(w, day)
	}
}

// weekOrder is the display order of days, Monday first.
var weekOrder = []week.Day{
	week.Monday, week.Tuesday, week.Wednesday, week.Thursday, week.Friday, week.Saturday, week.Sunday,
}
