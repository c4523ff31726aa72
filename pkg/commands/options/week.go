package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"tableflip.dev/ftf/pkg/timeutil"
	"tableflip.dev/ftf/pkg/week"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// WeekOptions selects the week a command works on.
type WeekOptions struct {
	Week     WeekValue
	OnString string
}

func AddWeekArgs(cmd *cobra.Command, o *WeekOptions) {
	cmd.Flags().VarP(&o.Week, "week", "w",
		`Specify the ISO week, example: --week=2026-W03.`)
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify any date inside the week, example: --on="2026-1-14", --on="1/14" or --on="next friday".`)
}

// WeekID resolves the flags to a week id. With neither flag set it is the
// week containing now.
func (o *WeekOptions) WeekID(now time.Time) (week.ID, error) {
	if o.Week.ID != "" {
		return o.Week.ID, nil
	}
	if strings.TrimSpace(o.OnString) == "" {
		return timeutil.CurrentWeekID(now), nil
	}
	t, err := ParseOn(o.OnString, now)
	if err != nil {
		return "", err
	}
	return timeutil.WeekID(t), nil
}

// ParseOn reads a date as ISO, month/day or natural language relative to now.
func ParseOn(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(layoutISO, raw, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutISOShort, raw, now.Location()); err == nil {
		t = t.AddDate(now.Year(), 0, 0)
		// 1/3 said on 12/5 means next year.
		if t.Before(now.Truncate(24 * time.Hour)) {
			t = t.AddDate(1, 0, 0)
		}
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(raw, now)
	if err != nil {
		return time.Time{}, err
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not understand date %q", raw)
	}
	return r.Time, nil
}
