package fet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/sgh-fet-agent/internal/dto"
)

const fallbackCalendarSize = 5

// CalendarIndex holds the effective day/hour lists for one request together
// with case-insensitive name-to-ordinal lookups. The same index is shared by
// the document builder and the result decoder so that both sides agree on
// slot arithmetic.
type CalendarIndex struct {
	days  []dto.CalendarDay
	hours []dto.CalendarHour

	dayOrdinals  map[string]int
	hourOrdinals map[string]int
}

// NewCalendarIndex sorts the calendar by declared index and substitutes the
// deterministic five-entry fallback for either list when it is empty.
func NewCalendarIndex(calendar dto.Calendar) *CalendarIndex {
	idx := &CalendarIndex{
		days:  effectiveDays(calendar.Days),
		hours: effectiveHours(calendar.Hours),
	}
	idx.dayOrdinals = make(map[string]int, len(idx.days)*2)
	for ordinal, day := range idx.days {
		registerName(idx.dayOrdinals, day.LongName, ordinal)
		registerName(idx.dayOrdinals, day.Name, ordinal)
	}
	idx.hourOrdinals = make(map[string]int, len(idx.hours)*2)
	for ordinal, hour := range idx.hours {
		registerName(idx.hourOrdinals, hour.LongName, ordinal)
		registerName(idx.hourOrdinals, hour.Name, ordinal)
	}
	return idx
}

// Days returns the effective day list in ordinal order.
func (c *CalendarIndex) Days() []dto.CalendarDay { return c.days }

// Hours returns the effective hour list in ordinal order.
func (c *CalendarIndex) Hours() []dto.CalendarHour { return c.hours }

// HoursPerDay is the length of the effective hour list.
func (c *CalendarIndex) HoursPerDay() int { return len(c.hours) }

// DayOrdinal resolves a solver-reported day name to its ordinal.
func (c *CalendarIndex) DayOrdinal(name string) (int, bool) {
	ordinal, ok := c.dayOrdinals[normalizeName(name)]
	return ordinal, ok
}

// HourOrdinal resolves a solver-reported hour name to its ordinal.
func (c *CalendarIndex) HourOrdinal(name string) (int, bool) {
	ordinal, ok := c.hourOrdinals[normalizeName(name)]
	return ordinal, ok
}

// DayName returns the display name for the given ordinal, with a generic
// fallback for out-of-range references.
func (c *CalendarIndex) DayName(ordinal int) string {
	if ordinal >= 0 && ordinal < len(c.days) {
		return displayName(c.days[ordinal].LongName, c.days[ordinal].Name)
	}
	return fmt.Sprintf("Day %d", ordinal+1)
}

// HourName returns the display name for the given ordinal, with a generic
// fallback for out-of-range references.
func (c *CalendarIndex) HourName(ordinal int) string {
	if ordinal >= 0 && ordinal < len(c.hours) {
		return displayName(c.hours[ordinal].LongName, c.hours[ordinal].Name)
	}
	return fmt.Sprintf("Block %d", ordinal+1)
}

func effectiveDays(days []dto.CalendarDay) []dto.CalendarDay {
	if len(days) > 0 {
		sorted := make([]dto.CalendarDay, len(days))
		copy(sorted, days)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
		return sorted
	}
	fallback := make([]dto.CalendarDay, fallbackCalendarSize)
	for i := range fallback {
		name := fmt.Sprintf("Day %d", i+1)
		fallback[i] = dto.CalendarDay{Index: i, Name: name, LongName: name}
	}
	return fallback
}

func effectiveHours(hours []dto.CalendarHour) []dto.CalendarHour {
	if len(hours) > 0 {
		sorted := make([]dto.CalendarHour, len(hours))
		copy(sorted, hours)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
		return sorted
	}
	fallback := make([]dto.CalendarHour, fallbackCalendarSize)
	for i := range fallback {
		fallback[i] = dto.CalendarHour{
			Index:    i,
			Name:     fmt.Sprintf("%02d:00", 8+i),
			LongName: fmt.Sprintf("Block %d", i+1),
		}
	}
	return fallback
}

// registerName records the ordinal under the normalized name. The first
// occurrence wins so duplicate display names keep their earliest slot.
func registerName(lookup map[string]int, name string, ordinal int) {
	key := normalizeName(name)
	if key == "" {
		return
	}
	if _, exists := lookup[key]; !exists {
		lookup[key] = ordinal
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func displayName(longName, name string) string {
	if longName != "" {
		return longName
	}
	return name
}
