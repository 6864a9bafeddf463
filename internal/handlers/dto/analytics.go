package dto

import "goodVibes/internal/service"

type GroupStatResponse struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	Total            int    `json:"total"`
	Completed        int    `json:"completed"`
	CompletionRate   int    `json:"completion_rate"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

type DayStatResponse struct {
	Date      string `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

type WordStatResponse struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type AnalyticsResponse struct {
	Range                     string              `json:"range"`
	From                      string              `json:"from,omitempty"`
	To                        string              `json:"to,omitempty"`
	Total                     int                 `json:"total"`
	Completed                 int                 `json:"completed"`
	Pending                   int                 `json:"pending"`
	CompletionRate            int                 `json:"completion_rate"`
	EstimatedMinutes          int                 `json:"estimated_minutes"`
	CompletedEstimatedMinutes int                 `json:"completed_estimated_minutes"`
	ByPriority                []GroupStatResponse `json:"by_priority"`
	ByProject                 []GroupStatResponse `json:"by_project"`
	ByCalendar                []GroupStatResponse `json:"by_calendar"`
	Daily                     []DayStatResponse   `json:"daily"`
	MostProductiveDay         *DayStatResponse    `json:"most_productive_day,omitempty"`
	TopWords                  []WordStatResponse  `json:"top_words"`
}

func groups(stats []service.GroupStat) []GroupStatResponse {
	result := make([]GroupStatResponse, len(stats))
	for i, g := range stats {
		result[i] = GroupStatResponse(g)
	}
	return result
}

func FromSummary(s *service.Summary) AnalyticsResponse {
	daily := make([]DayStatResponse, len(s.Daily))
	for i, d := range s.Daily {
		daily[i] = DayStatResponse(d)
	}
	words := make([]WordStatResponse, len(s.TopWords))
	for i, w := range s.TopWords {
		words[i] = WordStatResponse(w)
	}

	resp := AnalyticsResponse{
		Range:                     string(s.Range),
		From:                      s.From,
		To:                        s.To,
		Total:                     s.Total,
		Completed:                 s.Completed,
		Pending:                   s.Pending,
		CompletionRate:            s.CompletionRate,
		EstimatedMinutes:          s.EstimatedMinutes,
		CompletedEstimatedMinutes: s.CompletedEstimatedMinutes,
		ByPriority:                groups(s.ByPriority),
		ByProject:                 groups(s.ByProject),
		ByCalendar:                groups(s.ByCalendar),
		Daily:                     daily,
		TopWords:                  words,
	}
	if s.MostProductiveDay != nil {
		best := DayStatResponse(*s.MostProductiveDay)
		resp.MostProductiveDay = &best
	}
	return resp
}
