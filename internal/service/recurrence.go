package service

import (
	"fmt"
	"time"

	"goodVibes/internal/models"
	"goodVibes/internal/schedule"

	"github.com/teambition/rrule-go"
)

var recurrenceFreq = map[models.RecurrencePattern]rrule.Frequency{
	models.RecurDaily:   rrule.DAILY,
	models.RecurWeekly:  rrule.WEEKLY,
	models.RecurMonthly: rrule.MONTHLY,
}

// recurrenceDates раскладывает диапазон по правилу повтора. Если одна из дат
// не задана, возвращает nil: даты серии не сдвигаются. Ежемесячный повтор
// с 29-31 числа пропускает месяцы без такого дня.
func recurrenceDates(start, end string, rec Recurrence, loc *time.Location) ([]string, []string, error) {
	if start == "" || end == "" {
		return nil, nil, nil
	}

	from, err := schedule.ParseTaskDate(start, loc)
	if err != nil {
		return nil, nil, err
	}
	to, err := schedule.ParseTaskDate(end, loc)
	if err != nil {
		return nil, nil, err
	}
	length := schedule.DaysBetween(from, to)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    recurrenceFreq[rec.Pattern],
		Count:   rec.Count,
		Dtstart: schedule.Day(from),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("правило повтора: %w", err)
	}

	occurrences := rule.All()
	starts := make([]string, 0, len(occurrences))
	ends := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		starts = append(starts, schedule.FormatDate(occ))
		ends = append(ends, schedule.FormatDate(schedule.AddDays(occ, length)))
	}
	return starts, ends, nil
}
