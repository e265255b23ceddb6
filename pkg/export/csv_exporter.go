package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

var (
	scheduleHeaders = []string{"Activity", "Subject", "Students", "Time"}
	roomHeaders     = []string{"Room", "Building", "Capacity"}
)

// CSVExporter renders run summaries as CSV tables.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// RenderSchedule emits one record per placed activity with its time slots
// expanded through the labeler.
func (e *CSVExporter) RenderSchedule(rows []ScheduleRow, label SlotLabeler) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.ActivityID,
			row.Subject,
			strconv.Itoa(row.Students),
			formatSlots(row.Slots, label),
		})
	}
	return writeCSV(scheduleHeaders, records)
}

// RenderRooms emits the room listing.
func (e *CSVExporter) RenderRooms(rows []RoomRow) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Name,
			row.Building,
			strconv.Itoa(row.Capacity),
		})
	}
	return writeCSV(roomHeaders, records)
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
