package printers

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/dnd"
	"tableflip.dev/ftf/pkg/week"
)

func init() {
	color.NoColor = true
}

func sample() *week.Week {
	return &week.Week{
		ID:        "2026-W03",
		StartDate: time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
		Roles:     []week.Role{{ID: "r1", Name: "Work", Color: week.Teal}},
		Goals: []week.Goal{
			{ID: "g1", RoleID: "r1", Text: "Write report", Notes: "draft first"},
		},
		DayPriorities: []week.DayPriority{
			{ID: "p1", GoalID: "g1", Day: week.Monday},
			{ID: "p2", GoalID: "gone", Day: week.Monday},
		},
		TimeBlocks: []week.TimeBlock{
			{ID: "b1", Type: week.BlockGoal, GoalID: "g1", RoleID: "r1", Day: week.Monday, StartSlot: 2, Duration: 3, Title: "Write report"},
		},
		EveningBlocks: []week.EveningBlock{
			{ID: "e1", Type: week.BlockFreestyle, Day: week.Sunday, Title: "Movie night"},
		},
		UpdatedAt: time.Date(2026, time.January, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestWeek(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Week(sample())
	out := buf.String()

	assert.Contains(t, out, "2026-W03  Jan 12-18, 2026")
	assert.Contains(t, out, "Monday Jan 12")
	assert.Contains(t, out, "Sunday Jan 18")
	assert.Contains(t, out, "9:00-10:30")
	assert.Contains(t, out, "(deleted goal)")
	assert.Contains(t, out, "Movie night")
	assert.Contains(t, out, "draft first")
	assert.NotContains(t, out, "b1", "ids hidden by default")
}

func TestWeekShowID(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Day(sample(), week.Monday)
	assert.Contains(t, buf.String(), "b1")
	assert.Contains(t, buf.String(), "p1")
}

func TestGrid(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Grid(sample())
	out := buf.String()
	assert.Contains(t, out, "Mon")
	assert.Contains(t, out, "19:30")
	assert.Contains(t, out, "Write rep…")
	assert.Contains(t, out, "eve")
}

func TestWeeks(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	now := time.Date(2026, time.January, 16, 9, 0, 0, 0, time.UTC)
	pp.Weeks([]*week.Week{sample()}, "2026-W03", now)
	out := buf.String()
	assert.Contains(t, out, "2026-W03 *")
	assert.Contains(t, out, "0/1")
	assert.Contains(t, out, "2 days ago")
}

func TestReportAndOutcome(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Report(app.BuildReport(sample()))
	assert.Contains(t, buf.String(), "goals 0/1 done")
	assert.Contains(t, buf.String(), "1 item(s) point at deleted goals")

	buf.Reset()
	pp.Outcome(dnd.Outcome{Kind: dnd.OutcomeMoved, Created: "n", Removed: "o"})
	assert.Equal(t, "moved o -> n\n", buf.String())
}

func TestExport(t *testing.T) {
	w := sample()

	var js bytes.Buffer
	require.NoError(t, Export(&js, FormatJSON, w))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "2026-W03", decoded["id"])
	assert.Contains(t, js.String(), `"dayIndex": 1`)

	var ym bytes.Buffer
	require.NoError(t, Export(&ym, FormatYAML, w))
	var back week.Week
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &back))
	assert.Equal(t, w.Goals, back.Goals)

	assert.Error(t, Export(&ym, "toml", w))
}
