package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/ftf/pkg/app"
	"tableflip.dev/ftf/pkg/printers"
	"tableflip.dev/ftf/pkg/store"
	"tableflip.dev/ftf/pkg/week"
)

func init() {
	color.NoColor = true
}

func seeded() *store.Memory {
	return store.NewMemory(&week.Week{
		ID:    "2026-W03",
		Roles: []week.Role{{ID: "r1", Name: "Work", Color: week.Teal}},
		Goals: []week.Goal{{ID: "g1", RoleID: "r1", Text: "Ship it", Completed: true}},
	})
}

func TestReportPretty(t *testing.T) {
	var buf bytes.Buffer
	r := Report{Week: "2026-W03", Persistence: seeded(), Out: &buf}
	require.NoError(t, r.Do(context.Background()))
	assert.Contains(t, buf.String(), "Report · 2026-W03")
	assert.Contains(t, buf.String(), "goals 1/1 done")
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	r := Report{Week: "2026-W03", Format: printers.FormatJSON, Persistence: seeded(), Out: &buf}
	require.NoError(t, r.Do(context.Background()))

	var res app.ReportResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.Equal(t, 1, res.CompletedGoals)
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "Work", res.Sections[0].Role.Name)
}

func TestReportMissingWeek(t *testing.T) {
	r := Report{Week: "2026-W09", Persistence: seeded(), Out: &bytes.Buffer{}}
	assert.ErrorIs(t, r.Do(context.Background()), store.ErrNotFound)
}
