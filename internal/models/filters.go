package models

import (
	"fmt"
	"sort"
	"strings"
)

// AccidentFilter represents the dashboard filter criteria, bound from query
// parameters. Empty selection slices mean "no restriction on that dimension".
type AccidentFilter struct {
	States     []string `form:"state"`
	Severities []int    `form:"severity"`
	Weathers   []string `form:"weather"`
	Weekdays   []string `form:"day"`
	StartDate  string   `form:"startDate"` // YYYY-MM-DD
	EndDate    string   `form:"endDate"`   // YYYY-MM-DD
	HourMin    int      `form:"hourMin,default=0" binding:"min=0,max=23"`
	HourMax    int      `form:"hourMax,default=23" binding:"min=0,max=23"`
	MonthMin   int      `form:"monthMin,default=1" binding:"min=1,max=12"`
	MonthMax   int      `form:"monthMax,default=12" binding:"min=1,max=12"`
}

// Key returns a canonical cache key for the filter. Selection order does not
// affect the key.
func (f *AccidentFilter) Key() string {
	states := sortedCopy(f.States)
	weathers := sortedCopy(f.Weathers)
	weekdays := sortedCopy(f.Weekdays)

	severities := make([]int, len(f.Severities))
	copy(severities, f.Severities)
	sort.Ints(severities)

	return fmt.Sprintf("s=%s|v=%v|w=%s|d=%s|date=%s..%s|h=%d-%d|m=%d-%d",
		strings.Join(states, ","),
		severities,
		strings.Join(weathers, ","),
		strings.Join(weekdays, ","),
		f.StartDate, f.EndDate,
		f.HourMin, f.HourMax,
		f.MonthMin, f.MonthMax,
	)
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
