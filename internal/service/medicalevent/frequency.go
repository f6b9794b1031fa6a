package medicalevent

import (
	"strings"

	"github.com/stefanpalsson415/family-care-api/internal/model"
)

// scheduleSpec is the dosing cadence derived from a free-text frequency
// description.
type scheduleSpec struct {
	Frequency  model.ScheduleFrequency
	Times      []string
	DaysOfWeek []int
	DayOfMonth int
	WithFood   bool
}

// parseFrequency maps a free-text frequency string onto a dosing
// schedule by case-insensitive substring matching, first match wins.
// The keyword set and their order are deliberate: "twice a day with
// food" resolves to the twice-a-day branch, not the with-meals one.
// Anything unrecognized falls back to one daily morning dose; callers
// rely on this being permissive rather than an error.
func parseFrequency(frequency string) scheduleSpec {
	f := strings.ToLower(frequency)

	contains := func(keywords ...string) bool {
		for _, kw := range keywords {
			if strings.Contains(f, kw) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("daily", "once a day", "every day"):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"09:00"}}

	case contains("twice a day", "2 times a day", "bid", "b.i.d."):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"09:00", "21:00"}}

	case contains("three times a day", "3 times a day", "tid", "t.i.d."):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"09:00", "14:00", "21:00"}}

	case contains("four times a day", "4 times a day", "qid", "q.i.d."):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"08:00", "12:00", "16:00", "20:00"}}

	case contains("weekly", "once a week", "every week"):
		return scheduleSpec{Frequency: model.ScheduleWeekly, Times: []string{"09:00"}, DaysOfWeek: []int{1}}

	case contains("monthly", "once a month", "every month"):
		return scheduleSpec{Frequency: model.ScheduleMonthly, Times: []string{"09:00"}, DayOfMonth: 1}

	case contains("morning"):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"08:00"}}

	case contains("evening", "night"):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"20:00"}}

	case contains("with meals", "with food"):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"08:00", "13:00", "19:00"}, WithFood: true}

	case contains("before bed", "at bedtime"):
		return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"22:00"}}
	}

	return scheduleSpec{Frequency: model.ScheduleDaily, Times: []string{"09:00"}}
}
