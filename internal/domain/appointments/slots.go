package appointments

import (
	"context"
	"fmt"
	"time"
)

const (
	SlotStep    = 30 * time.Minute
	HorizonDays = 7
	OpenHour    = 9
	CloseHour   = 18 // exclusivo: el último slot empieza 17:30
)

// Window devuelve [medianoche local de now, +HorizonDays).
func Window(now time.Time, loc *time.Location) (start, end time.Time) {
	now = now.In(loc)
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, HorizonDays)
	return start, end
}

// FreeSlots es puro: recorre la ventana en pasos de SlotStep y descarta lo
// que cae fuera de horario, lo ocupado (cualquier categoría) y lo anterior a now.
func FreeSlots(now time.Time, busy []time.Time, loc *time.Location) []time.Time {
	start, end := Window(now, loc)

	taken := make(map[int64]struct{}, len(busy))
	for _, b := range busy {
		taken[b.Unix()] = struct{}{}
	}

	out := make([]time.Time, 0, HorizonDays*(CloseHour-OpenHour)*2)
	for t := start; t.Before(end); t = t.Add(SlotStep) {
		if h := t.Hour(); h < OpenHour || h >= CloseHour {
			continue
		}
		if _, ok := taken[t.Unix()]; ok {
			continue
		}
		if t.Before(now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Service) FreeSlots(ctx context.Context) ([]time.Time, error) {
	now := s.now().In(s.loc)
	start, end := Window(now, s.loc)

	busy, err := s.repo.ListActiveTimestamps(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list busy slots: %w", err)
	}
	return FreeSlots(now, busy, s.loc), nil
}
