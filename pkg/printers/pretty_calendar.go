package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/ftf/pkg/glyph"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

const cellWidth = 12

// Grid prints the week as a slot-by-day table: one row per half hour from
// 8:00 to 19:30 and a final evening row. A block fills every slot it covers;
// its title is shown in the first one.
func (pp *PrettyPrint) Grid(w *week.Week) {
	tbl := uitable.New()
	tbl.Separator = " "

	bold := color.New(color.Bold)
	header := []interface{}{""}
	for _, day := range weekOrder {
		header = append(header, bold.Sprint(day.Short()))
	}
	tbl.AddRow(header...)

	faint := color.New(color.Faint)
	for slot := week.Slot(0); slot < week.SlotsPerDay; slot++ {
		row := []interface{}{faint.Sprint(timeutil.SlotToTime(slot))}
		for _, day := range weekOrder {
			row = append(row, gridCell(w, day, slot))
		}
		tbl.AddRow(row...)
	}

	evening := []interface{}{faint.Sprint("eve")}
	for _, day := range weekOrder {
		cell := ""
		if b, ok := w.EveningBlockFor(day); ok {
			r, _ := w.Role(b.RoleID)
			cell = RoleColor(r.Color).Sprint(glyph.Evening.String() + " " + truncate(b.Title))
		}
		evening = append(evening, cell)
	}
	tbl.AddRow(evening...)
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.w(), tbl)
}

func gridCell(w *week.Week, day week.Day, slot week.Slot) string {
	var parts []string
	for _, b := range w.TimeBlocksFor(day) {
		if slot < b.StartSlot || slot >= b.EndSlot() {
			continue
		}
		r, _ := w.Role(b.RoleID)
		c := RoleColor(r.Color)
		if slot == b.StartSlot {
			m := glyph.ForBlock(b.Type, b.Completed, w.Orphaned(b.Type, b.GoalID))
			parts = append(parts, c.Sprint(m.String()+" "+truncate(b.Title)))
		} else {
			parts = append(parts, c.Sprint("│"))
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= cellWidth-2 {
		return s
	}
	return string(r[:cellWidth-3]) + "…"
}

// Weeks lists stored weeks with their size and age.
func (pp *PrettyPrint) Weeks(weeks []*week.Week, current week.ID, now time.Time) {
	pp.TitleWithCount("Weeks", len(weeks), "week")
	if len(weeks) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Week"), bold.Sprint("Dates"), bold.Sprint("Roles"), bold.Sprint("Goals"), bold.Sprint("Blocks"), bold.Sprint("Updated"))
	for _, w := range weeks {
		id := string(w.ID)
		if w.ID == current {
			id = bold.Sprint(id + " *")
		}
		label, err := timeutil.FormatWeekLabel(w.ID)
		if err != nil {
			label = "?"
		}
		done := 0
		for _, g := range w.Goals {
			if g.Completed {
				done++
			}
		}
		tbl.AddRow(
			id,
			label,
			len(w.Roles),
			fmt.Sprintf("%d/%d", done, len(w.Goals)),
			len(w.TimeBlocks)+len(w.EveningBlocks),
			humanize.RelTime(w.UpdatedAt, now, "ago", "from now"),
		)
	}
	_, _ = fmt.Fprintln(pp.w(), tbl)
}
