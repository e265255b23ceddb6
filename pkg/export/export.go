// Package export renders solver run summaries into downloadable files.
package export

import (
	"strconv"
	"strings"
)

// SlotLabeler translates an absolute slot ordinal into display day and hour
// names. A nil labeler leaves slots as bare ordinals.
type SlotLabeler func(slot int) (day, hour string)

// ScheduleRow is one placed activity prepared for rendering.
type ScheduleRow struct {
	ActivityID string
	Subject    string
	Students   int
	Slots      []int
}

// RoomRow is one room with its resolved building display name.
type RoomRow struct {
	Name     string
	Building string
	Capacity int
}

// formatSlots renders the slot list either as labeled day/hour pairs or, when
// no labeler is available, as the raw ordinals.
func formatSlots(slots []int, label SlotLabeler) string {
	parts := make([]string, len(slots))
	for i, slot := range slots {
		if label == nil {
			parts[i] = strconv.Itoa(slot)
			continue
		}
		day, hour := label(slot)
		parts[i] = day + " " + hour
	}
	if label == nil {
		return strings.Join(parts, " ")
	}
	return strings.Join(parts, ", ")
}
