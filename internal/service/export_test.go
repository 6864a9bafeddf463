package service

import "time"

func (s *TodoService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *WeekService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *InteractionService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ImportService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ExportService) SetClock(now func() time.Time) {
	s.now = now
}
