package appointments

import (
	"strings"
	"time"
)

// Layout es el formato de fecha en el wire: dd.mm.yyyy HH:MM.
const Layout = "02.01.2006 15:04"

func FormatSlot(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// ParseSlot interpreta s como hora local de la clínica.
func ParseSlot(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}
