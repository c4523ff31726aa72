package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/glyph"
	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

// Report prints a week summary grouped by role.
func (pp *PrettyPrint) Report(res app.ReportResult) {
	label, err := timeutil.FormatWeekLabel(res.Week)
	if err != nil {
		label = string(res.Week)
	}
	_, _ = color.New(color.Bold).Fprintf(pp.w(), "Report · %s (%s)\n", res.Week, label)
	_, _ = fmt.Fprintf(pp.w(), "  goals %d/%d done · scheduled %s (%s freestyle)\n",
		res.CompletedGoals, res.Goals,
		hours(res.ScheduledSlots), hours(res.FreestyleSlots))
	if res.Orphans > 0 {
		_, _ = color.New(color.FgYellow).Fprintf(pp.w(), "  %d item(s) point at deleted goals\n", res.Orphans)
	}

	for _, section := range res.Sections {
		pp.NewLine()
		_, _ = RoleColor(section.Role.Color).Add(color.Bold).Fprintln(pp.w(), section.Role.Name)
		if len(section.Entries) == 0 {
			pp.none()
			continue
		}
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, item := range section.Entries {
			mark := " "
			text := item.Goal.Text
			if item.Goal.Completed {
				mark = glyph.Completed.String()
				text = glyph.Strike(text)
			}
			evening := ""
			if item.EveningScheduled {
				evening = glyph.Evening.String()
			}
			tbl.AddRow(
				"  "+mark,
				text,
				fmt.Sprintf("%d%s", item.Priorities, glyph.Priority),
				fmt.Sprintf("%d/%d blocks", item.CompletedBlocks, item.TotalBlocks),
				hours(item.ScheduledSlots),
				evening,
			)
		}
		_, _ = fmt.Fprintln(pp.w(), tbl)
	}
	pp.NewLine()
}

func hours(slots int) string {
	if slots <= 0 {
		return "0m"
	}
	return timeutil.FormatDuration(slots)
}

// Outcome prints the result of a drop.
func (pp *PrettyPrint) Outcome(out dnd.Outcome) {
	switch out.Kind {
	case dnd.OutcomeNoop:
		_, _ = color.New(color.Faint).Fprintf(pp.w(), "nothing to do: %s\n", out.Reason)
	case dnd.OutcomeCreated:
		_, _ = fmt.Fprintf(pp.w(), "created %s\n", out.Created)
	case dnd.OutcomeMoved:
		if out.Updated != "" {
			_, _ = fmt.Fprintf(pp.w(), "moved %s\n", out.Updated)
			return
		}
		_, _ = fmt.Fprintf(pp.w(), "moved %s -> %s\n", out.Removed, out.Created)
	}
}

// Key prints the marker legend and the role palette.
func (pp *PrettyPrint) Key() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Marker"), bold.Sprint("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.w(), tbl)
	pp.NewLine()

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Role"), bold.Sprint("Color"))
	for i, c := range week.Palette {
		tbl.AddRow(fmt.Sprintf("%d", i+1), RoleColor(c).Sprint("■ "+string(c)))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.w(), tbl)
}
