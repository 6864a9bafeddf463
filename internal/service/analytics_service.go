package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"goodVibes/internal/models"
	"goodVibes/internal/schedule"
)

type AnalyticsRange string

const (
	RangeWeek  AnalyticsRange = "week"
	RangeMonth AnalyticsRange = "month"
	RangeAll   AnalyticsRange = "all"
)

func (r AnalyticsRange) Valid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeAll:
		return true
	}
	return false
}

type GroupStat struct {
	Key              string
	Name             string
	Total            int
	Completed        int
	CompletionRate   int
	EstimatedMinutes int
}

type DayStat struct {
	Date      string
	Created   int
	Completed int
}

type WordStat struct {
	Word  string
	Count int
}

type Summary struct {
	Range                     AnalyticsRange
	From                      string
	To                        string
	Total                     int
	Completed                 int
	Pending                   int
	CompletionRate            int
	EstimatedMinutes          int
	CompletedEstimatedMinutes int
	ByPriority                []GroupStat
	ByProject                 []GroupStat
	ByCalendar                []GroupStat
	Daily                     []DayStat
	MostProductiveDay         *DayStat
	TopWords                  []WordStat
}

const topWordsLimit = 10

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {}, "all": {},
	"can": {}, "had": {}, "her": {}, "was": {}, "one": {}, "our": {}, "out": {}, "day": {},
	"get": {}, "use": {}, "man": {}, "new": {}, "now": {}, "way": {}, "may": {}, "say": {},
	"with": {}, "this": {}, "that": {}, "from": {},
}

type AnalyticsService struct {
	todos     todoLister
	calendars CalendarRepository
}

func NewAnalyticsService(todos todoLister, calendars CalendarRepository) *AnalyticsService {
	return &AnalyticsService{
		todos:     todos,
		calendars: calendars,
	}
}

// Summary считает статистику по задачам, созданным в выбранном периоде:
// week - текущая неделя с понедельника, month - последние 30 дней, all - всё.
func (s *AnalyticsService) Summary(ctx context.Context, userID string, rng AnalyticsRange, now time.Time) (*Summary, error) {
	if rng == "" {
		rng = RangeWeek
	}
	if !rng.Valid() {
		return nil, NewValidationError("range", "ожидается week, month или all")
	}

	todos, err := s.todos.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	calendars, err := s.calendars.ListCalendars(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение календарей: %w", err)
	}

	loc := now.Location()
	today := schedule.Day(now)
	sum := &Summary{Range: rng}

	var from, to time.Time
	switch rng {
	case RangeWeek:
		from = schedule.AddDays(today, -((int(today.Weekday()) + 6) % 7))
		to = schedule.AddDays(from, 6)
	case RangeMonth:
		from = schedule.AddDays(today, -30)
		to = today
	}

	inRange := make([]*models.Todo, 0, len(todos))
	for _, t := range todos {
		if rng == RangeAll || withinDays(t.CreatedAt.In(loc), from, to) {
			inRange = append(inRange, t)
		}
	}
	if rng != RangeAll {
		sum.From = schedule.FormatDate(from)
		sum.To = schedule.FormatDate(to)
		sum.Daily = dailyStats(todos, from, to)
		sum.MostProductiveDay = mostProductive(sum.Daily)
	}

	for _, t := range inRange {
		sum.Total++
		minutes := estimated(t)
		sum.EstimatedMinutes += minutes
		if t.IsCompleted {
			sum.Completed++
			sum.CompletedEstimatedMinutes += minutes
		}
	}
	sum.Pending = sum.Total - sum.Completed
	sum.CompletionRate = rate(sum.Completed, sum.Total)

	sum.ByPriority = groupBy(inRange, func(t *models.Todo) (string, bool) {
		return string(t.Priority), t.Priority != models.PriorityNone && t.Priority != ""
	}, []string{string(models.PriorityHigh), string(models.PriorityMedium), string(models.PriorityLow)})

	sum.ByProject = groupBy(inRange, func(t *models.Todo) (string, bool) {
		if t.ProjectID == nil {
			return "", false
		}
		return t.ProjectID.String(), true
	}, nil)

	calendarOrder := make([]string, 0, len(calendars))
	names := make(map[string]string, len(calendars))
	for _, c := range calendars {
		calendarOrder = append(calendarOrder, c.ID.String())
		names[c.ID.String()] = c.Name
	}
	sum.ByCalendar = groupBy(inRange, func(t *models.Todo) (string, bool) {
		return t.CalendarID.String(), true
	}, calendarOrder)
	for i := range sum.ByCalendar {
		sum.ByCalendar[i].Name = names[sum.ByCalendar[i].Key]
	}

	sum.TopWords = topWords(inRange, topWordsLimit)
	return sum, nil
}

// groupBy сохраняет порядок order, ключи вне его идут следом в порядке появления.
// Пустые группы не возвращаются.
func groupBy(todos []*models.Todo, key func(*models.Todo) (string, bool), order []string) []GroupStat {
	stats := make(map[string]*GroupStat)
	seen := append([]string(nil), order...)
	known := make(map[string]struct{}, len(order))
	for _, k := range order {
		known[k] = struct{}{}
	}

	for _, t := range todos {
		k, ok := key(t)
		if !ok {
			continue
		}
		st, exists := stats[k]
		if !exists {
			st = &GroupStat{Key: k}
			stats[k] = st
			if _, ok := known[k]; !ok {
				seen = append(seen, k)
				known[k] = struct{}{}
			}
		}
		st.Total++
		st.EstimatedMinutes += estimated(t)
		if t.IsCompleted {
			st.Completed++
		}
	}

	res := make([]GroupStat, 0, len(stats))
	for _, k := range seen {
		st, ok := stats[k]
		if !ok {
			continue
		}
		st.CompletionRate = rate(st.Completed, st.Total)
		res = append(res, *st)
	}
	return res
}

func dailyStats(todos []*models.Todo, from, to time.Time) []DayStat {
	n := schedule.DaysBetween(from, to) + 1
	days := make([]DayStat, n)
	for i := range days {
		days[i].Date = schedule.FormatDate(schedule.AddDays(from, i))
	}

	loc := from.Location()
	for _, t := range todos {
		if !t.CreatedAt.IsZero() {
			if i := schedule.DaysBetween(from, t.CreatedAt.In(loc)); i >= 0 && i < n {
				days[i].Created++
			}
		}
		if t.CompletedAt != nil {
			if i := schedule.DaysBetween(from, t.CompletedAt.In(loc)); i >= 0 && i < n {
				days[i].Completed++
			}
		}
	}
	return days
}

func mostProductive(days []DayStat) *DayStat {
	var best *DayStat
	for i := range days {
		if days[i].Completed == 0 {
			continue
		}
		if best == nil || days[i].Completed > best.Completed {
			best = &days[i]
		}
	}
	return best
}

func topWords(todos []*models.Todo, limit int) []WordStat {
	counts := make(map[string]int)
	for _, t := range todos {
		for _, word := range strings.Fields(strings.ToLower(t.Title)) {
			if len([]rune(word)) <= 3 {
				continue
			}
			if _, stop := stopWords[word]; stop {
				continue
			}
			counts[word]++
		}
	}

	res := make([]WordStat, 0, len(counts))
	for w, c := range counts {
		res = append(res, WordStat{Word: w, Count: c})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Word < res[j].Word
	})
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}

func withinDays(t, from, to time.Time) bool {
	return schedule.DaysBetween(from, t) >= 0 && schedule.DaysBetween(t, to) >= 0
}

func estimated(t *models.Todo) int {
	if t.EstimatedTime == nil {
		return 0
	}
	return *t.EstimatedTime
}

func rate(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
